package domain

import (
	"context"

	corechart "waxpoll/internal/core/chart"
)

// ServicePort is consumed by handlers and by the reveal module, which
// recomputes implicitly before confirming a never-computed year
type ServicePort interface {
	// Recompute rebuilds the year's chart from eligible contributors' lists
	// and persists it atomically, preserving any existing reveal state
	Recompute(ctx context.Context, year int) (Record, error)

	// Get returns the persisted chart or a not found error
	Get(ctx context.Context, year int) (Record, error)

	// Status reports lifecycle facts without triggering a recompute
	Status(ctx context.Context, year int) (Status, error)

	// Stats returns the persisted statistics block for a computed year
	Stats(ctx context.Context, year int) (corechart.Stats, error)

	// RevealedYears lists years whose charts are visible to everyone
	RevealedYears(ctx context.Context) ([]int, error)
}
