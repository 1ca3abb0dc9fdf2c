// Package service implements the contributor roster workflows
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"waxpoll/internal/modkit/repokit"
	perr "waxpoll/internal/platform/errors"
	"waxpoll/internal/platform/logger"
	"waxpoll/internal/services/roster/domain"
	"waxpoll/internal/services/roster/repo"
)

// Service defines the roster service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the roster service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	// now is a seam for tests
	now func() time.Time
}

// New constructs a roster service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("roster.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("roster.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, now: time.Now}
}

// Contributors lists the year's roster
func (s *Svc) Contributors(ctx context.Context, year int) ([]domain.Contributor, error) {
	return s.Repo.Contributors(ctx, year)
}

// EligibleUsers lists users with an applicable list for the year
func (s *Svc) EligibleUsers(ctx context.Context, year int) ([]domain.EligibleUser, error) {
	return s.Repo.EligibleUsers(ctx, year)
}

// Add opts a user in for a year. Membership shapes the next recompute only;
// an already-computed chart is untouched until someone recomputes
func (s *Svc) Add(ctx context.Context, in domain.AddInput) error {
	return s.Repo.AddContributor(ctx, in.Year, in.UserID, in.ActorID, s.now().UTC())
}

// Remove opts a user out for a year
func (s *Svc) Remove(ctx context.Context, in domain.RemoveInput) error {
	return s.Repo.RemoveContributor(ctx, in.Year, in.UserID)
}

// Set replaces the year's roster wholesale. Delete and insert run in one
// transaction so a failure never leaves the year with an empty roster as a
// final state
func (s *Svc) Set(ctx context.Context, in domain.SetInput) error {
	// the bulk insert casts to uuid[], validate up front for a clean error
	for _, id := range in.UserIDs {
		if _, err := uuid.Parse(id); err != nil {
			return perr.InvalidArgf("invalid user id %q", id)
		}
	}

	now := s.now().UTC()
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.DeleteContributors(ctx, in.Year); err != nil {
			return err
		}
		if len(in.UserIDs) == 0 {
			return nil
		}
		return r.InsertContributors(ctx, in.Year, in.UserIDs, in.ActorID, now)
	})
	if err != nil {
		return err
	}

	logger.C(ctx).Info().
		Int("year", in.Year).
		Int("contributors", len(in.UserIDs)).
		Msg("contributor roster replaced")
	return nil
}

// HasSeen reports the user's reveal-view marker
func (s *Svc) HasSeen(ctx context.Context, year int, userID string) (domain.SeenStatus, error) {
	seen, err := s.Repo.HasSeen(ctx, year, userID)
	if err != nil {
		return domain.SeenStatus{}, err
	}
	return domain.SeenStatus{Year: year, UserID: userID, Seen: seen}, nil
}

// MarkSeen records that the user has been shown the year's reveal
func (s *Svc) MarkSeen(ctx context.Context, in domain.SeenInput) error {
	return s.Repo.MarkSeen(ctx, in.Year, in.UserID, s.now().UTC())
}

// ResetSeen clears the marker for support and testing flows
func (s *Svc) ResetSeen(ctx context.Context, in domain.SeenInput) error {
	return s.Repo.ResetSeen(ctx, in.Year, in.UserID)
}

// ViewedYears lists the years a user has been shown, newest first
func (s *Svc) ViewedYears(ctx context.Context, userID string) ([]int, error) {
	return s.Repo.ViewedYears(ctx, userID)
}
