package domain

import "context"

// ServicePort is consumed by handlers
type ServicePort interface {
	// Contributors lists the year's roster
	Contributors(ctx context.Context, year int) ([]Contributor, error)

	// EligibleUsers lists users with an applicable list for the year,
	// annotated with roster membership and album count
	EligibleUsers(ctx context.Context, year int) ([]EligibleUser, error)

	// Add opts a user in; repeating the call is a no-op
	Add(ctx context.Context, in AddInput) error

	// Remove opts a user out; removing an absent user is a no-op
	Remove(ctx context.Context, in RemoveInput) error

	// Set replaces the year's roster wholesale, all or nothing
	Set(ctx context.Context, in SetInput) error

	// HasSeen reports the user's reveal-view marker
	HasSeen(ctx context.Context, year int, userID string) (SeenStatus, error)

	// MarkSeen sets the marker; duplicate marks are no-ops
	MarkSeen(ctx context.Context, in SeenInput) error

	// ResetSeen clears the marker, an administrative override
	ResetSeen(ctx context.Context, in SeenInput) error

	// ViewedYears lists the years a user has been shown, newest first
	ViewedYears(ctx context.Context, userID string) ([]int, error)
}
