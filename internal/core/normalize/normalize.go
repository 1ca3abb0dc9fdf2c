// Package normalize provides a deterministic text normalizer used to build
// album dedup keys
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD decomposition
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Width fold fullwidth to ASCII
// 6 Ampersand variants fold to "and"
// 7 Strip edition and remaster suffixes eg "(Remastered)" "- Deluxe Edition"
// 8 Punctuation to spaces
// 9 Strip a leading article (the/a/an)
// 10 Collapse whitespace to single spaces and trim
//
// Normalized values are only ever used as keys, never shown to users
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKD,                          // decomposed so the mark strip below sees bare combining runes
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// editionWords are suffix markers that metadata sources love to append.
// Matched against already-folded text, either inside a trailing bracketed
// group or after a trailing dash
var editionWords = []string{
	"remaster",
	"remastered",
	"deluxe",
	"expanded",
	"anniversary",
	"bonus",
	"edition",
	"version",
	"reissue",
	"special",
	"collector",
	"legacy",
	"mono",
	"stereo",
	"explicit",
	"ep",
	"single",
}

// articles stripped from the front of a part ("the beatles" == "beatles")
var articles = []string{"the ", "a ", "an "}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the normalized form of s following the pipeline described above.
// Empty or whitespace-only input yields the empty string, never an error
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-5 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 6 ampersand variants
	ns = foldAmpersand(ns)

	// 7 edition suffixes, applied repeatedly since sources stack them
	// eg "OK Computer (Remastered) (Deluxe Edition)"
	for {
		trimmed := stripEditionSuffix(ns)
		if trimmed == ns {
			break
		}
		ns = trimmed
	}

	// 8 punctuation to spaces
	ns = foldPunct(ns)

	// 9 leading article
	ns = stripArticle(ns)

	// 10 collapse whitespace and trim
	ns = collapseSpaces(ns)

	return ns
}

// foldAmpersand maps "&" and its typographic variants to " and "
// so "Nick Cave & The Bad Seeds" and "Nick Cave and the Bad Seeds" collide
func foldAmpersand(s string) string {
	if !strings.ContainsAny(s, "&﹠⅋") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '&', '﹠', '⅋':
			b.WriteString(" and ")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripEditionSuffix removes one trailing edition marker group.
// Two shapes are recognized
//   - a trailing bracketed group containing an edition marker
//     "ok computer (remastered 2017)" -> "ok computer"
//   - a trailing dash segment containing an edition marker
//     "abbey road - 50th anniversary" -> "abbey road"
//
// Anything else is left alone so a legitimate title like "a deluxe life" survives
func stripEditionSuffix(s string) string {
	t := strings.TrimRight(s, " ")
	if t == "" {
		return s
	}

	// bracketed group: ( ... ) [ ... ] { ... }
	if c := t[len(t)-1]; c == ')' || c == ']' || c == '}' {
		open := map[byte]byte{')': '(', ']': '[', '}': '{'}[c]
		if i := strings.LastIndexByte(t, open); i > 0 {
			if containsEditionWord(t[i+1 : len(t)-1]) {
				return strings.TrimRight(t[:i], " ")
			}
		}
		return s
	}

	// trailing dash segment: " - deluxe edition"
	if i := strings.LastIndex(t, " - "); i > 0 {
		if containsEditionWord(t[i+3:]) {
			return strings.TrimRight(t[:i], " ")
		}
	}
	return s
}

// containsEditionWord reports whether any whitespace-separated token of s
// is an edition marker. Token match is exact so "remastering a life" stays
func containsEditionWord(s string) bool {
	for _, tok := range strings.Fields(s) {
		tok = strings.Trim(tok, ".,;:")
		for _, w := range editionWords {
			if tok == w {
				return true
			}
		}
	}
	return false
}

// foldPunct drops apostrophes and periods outright ("Pepper's" == "Peppers",
// "R.E.M." == "REM") and replaces every other punctuation or symbol rune with
// a space
func foldPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\'' || r == '’' || r == '.':
			// deleted, not spaced, so possessives and initialisms collide
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripArticle removes one leading english article
func stripArticle(s string) string {
	t := strings.TrimLeft(s, " ")
	for _, a := range articles {
		if strings.HasPrefix(t, a) {
			rest := strings.TrimLeft(t[len(a):], " ")
			// never strip a value down to nothing
			if rest != "" {
				return rest
			}
		}
	}
	return t
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims both edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
