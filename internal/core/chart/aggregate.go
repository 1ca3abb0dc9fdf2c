package chart

import (
	"waxpoll/internal/core/albumkey"
	"waxpoll/internal/core/scoring"
)

// Aggregate folds raw entries into a map of dedup key to album aggregate.
// First writer wins on display fields so the fold is stable under any
// contributor iteration order; every entry contributes to totals even when
// its position scores zero, because voter counts and position lists must
// reflect true participation. Zero-point aggregates are filtered later by
// Rank, never here
func Aggregate(entries []Entry) map[string]*AlbumAggregate {
	keys := albumkey.New()
	out := make(map[string]*AlbumAggregate, len(entries))

	for _, e := range entries {
		key := keys.ForAlbum(e.Artist, e.Album)

		agg, ok := out[key]
		if !ok {
			agg = &AlbumAggregate{
				AlbumMBID:   e.AlbumMBID,
				Artist:      e.Artist,
				Album:       e.Album,
				ReleaseDate: e.ReleaseDate,
				Country:     e.Country,
				Genre1:      e.Genre1,
				Genre2:      e.Genre2,
				CoverImage:  e.CoverImage,
				CoverFormat: e.CoverFormat,
			}
			out[key] = agg
		}

		pts := scoring.PointsForPosition(e.Position)
		agg.TotalPoints += pts
		agg.VoterCount++
		agg.Positions = append(agg.Positions, e.Position)
		agg.Voters = append(agg.Voters, Voter{
			DisplayName: e.DisplayName,
			Position:    e.Position,
			Points:      pts,
		})
	}

	return out
}
