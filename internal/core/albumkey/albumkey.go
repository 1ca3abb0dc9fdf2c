// Package albumkey derives the dedup key that merges equivalent albums
// contributed from different metadata sources
package albumkey

import (
	"waxpoll/internal/core/normalize"
)

// Separator joins the artist and album parts of a key.
// The unit separator is a C0 control so Sanitize strips it from input text,
// which means it can never appear inside a normalized part
const Separator = "\x1f"

// Builder builds dedup keys via a shared Normalizer
type Builder struct {
	n *normalize.Normalizer
}

// New constructs a Builder
func New() *Builder { return &Builder{n: normalize.New()} }

// ForAlbum returns the normalized dedup key for an (artist, album) pair.
// Empty parts normalize to the empty string so partial metadata still keys;
// two fully empty parts share the single degenerate key
func (b *Builder) ForAlbum(artist, album string) string {
	return b.n.Normalize(artist) + Separator + b.n.Normalize(album)
}
