package chart

import (
	"math"
	"sort"
)

// Rank orders aggregates into the final chart.
//
// Albums that never placed inside the scored range (zero total points) are
// dropped, as is any aggregate with no recorded positions. The rest sort by
// total points descending, ties broken by the best single placement
// ascending (the album someone ranked closest to #1 wins), then by dedup key
// so the order is total and byte-identical across runs.
//
// Ranks use competition semantics: albums tied on both points and best
// placement share a rank, and the album after a tie group takes its 1-based
// slot, leaving a gap
func Rank(aggs map[string]*AlbumAggregate) []RankedAlbum {
	type keyed struct {
		key string
		agg *AlbumAggregate
	}

	survivors := make([]keyed, 0, len(aggs))
	for k, a := range aggs {
		if a.TotalPoints == 0 || len(a.Positions) == 0 {
			continue
		}
		survivors = append(survivors, keyed{key: k, agg: a})
	}

	sort.Slice(survivors, func(i, j int) bool {
		a, b := survivors[i].agg, survivors[j].agg
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if pa, pb := minPosition(a.Positions), minPosition(b.Positions); pa != pb {
			return pa < pb
		}
		return survivors[i].key < survivors[j].key
	})

	out := make([]RankedAlbum, 0, len(survivors))
	for i, s := range survivors {
		ra := RankedAlbum{
			AlbumAggregate:  *s.agg,
			HighestPosition: minPosition(s.agg.Positions),
			LowestPosition:  maxPosition(s.agg.Positions),
			AveragePosition: round2(meanPosition(s.agg.Positions)),
		}

		// shared rank if and only if points and best placement both match
		// the predecessor, otherwise the 1-based slot
		if i > 0 &&
			out[i-1].TotalPoints == ra.TotalPoints &&
			out[i-1].HighestPosition == ra.HighestPosition {
			ra.Rank = out[i-1].Rank
		} else {
			ra.Rank = i + 1
		}

		// voters sorted by position for stable display
		ra.Voters = append([]Voter(nil), s.agg.Voters...)
		sort.SliceStable(ra.Voters, func(i, j int) bool { return ra.Voters[i].Position < ra.Voters[j].Position })

		out = append(out, ra)
	}
	return out
}

func minPosition(ps []int) int {
	m := ps[0]
	for _, p := range ps[1:] {
		if p < m {
			m = p
		}
	}
	return m
}

func maxPosition(ps []int) int {
	m := ps[0]
	for _, p := range ps[1:] {
		if p > m {
			m = p
		}
	}
	return m
}

func meanPosition(ps []int) float64 {
	sum := 0
	for _, p := range ps {
		sum += p
	}
	return float64(sum) / float64(len(ps))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
