package domain

import "context"

// ServicePort is consumed by handlers
type ServicePort interface {
	// Confirm records an approver's confirmation, recomputing the chart
	// first when the year was never computed. Reaching quorum flips the
	// chart to revealed exactly once; confirming a revealed year is a no-op
	Confirm(ctx context.Context, in ConfirmInput) (Result, error)

	// Revoke withdraws a confirmation before reveal; afterwards it is a no-op
	Revoke(ctx context.Context, in RevokeInput) (Result, error)

	// Confirmations lists stored confirmations for a year
	Confirmations(ctx context.Context, year int) ([]Confirmation, error)
}

// Recomputer is the slice of the chart service the reveal machine needs to
// satisfy its missing-record precondition
type Recomputer interface {
	Recompute(ctx context.Context, year int) error
}
