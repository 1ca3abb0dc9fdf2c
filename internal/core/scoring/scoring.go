// Package scoring holds the fixed position-to-points table used when folding
// contributor lists into a year chart
//
// The table is versioned data, not configuration: persisted chart scores were
// computed against a specific table, so changing values here would silently
// rewrite the meaning of history. Bump TableVersion if the curve ever changes
package scoring

// TableVersion identifies the points curve used for stored charts
const TableVersion = 1

// MaxScoredPosition is the deepest list position that earns points.
// Storage queries and the ranker both reference this constant so the cutoff
// cannot drift between layers
const MaxScoredPosition = 40

// points is front-loaded: the gap between neighboring positions shrinks from
// six at the top to one from position fifteen onward
var points = [MaxScoredPosition]int{
	60, 54, 49, 45, 42, 39, 37, 35, 33, 31,
	30, 29, 28, 27, 26, 25, 24, 23, 22, 21,
	20, 19, 18, 17, 16, 15, 14, 13, 12, 11,
	10, 9, 8, 7, 6, 5, 4, 3, 2, 1,
}

// PointsForPosition returns the points a 1-based list position is worth.
// Positions outside [1, MaxScoredPosition] are worth nothing
func PointsForPosition(position int) int {
	if position < 1 || position > MaxScoredPosition {
		return 0
	}
	return points[position-1]
}
