// Package service implements the quorum gated reveal state machine
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"waxpoll/internal/modkit/repokit"
	perr "waxpoll/internal/platform/errors"
	"waxpoll/internal/platform/logger"
	ptime "waxpoll/internal/platform/time"
	"waxpoll/internal/services/reveal/domain"
	"waxpoll/internal/services/reveal/repo"
)

// Service defines the reveal service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the reveal service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	charts domain.Recomputer

	// now is a seam for tests
	now func() time.Time
}

// New constructs a reveal service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], charts domain.Recomputer) *Svc {
	if db == nil {
		panic("reveal.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("reveal.Service requires a non nil Repo binder")
	}
	if charts == nil {
		panic("reveal.Service requires a non nil Recomputer port")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, charts: charts, now: time.Now}
}

// Confirm records one approver's confirmation for a year's chart.
// A year that was never computed is recomputed first, so the chart row the
// transaction locks always exists. The lock, the insert, the recount, and
// the conditional flip run inside one transaction: two approvers confirming
// concurrently serialize on the row lock and exactly one of them observes
// the count reach quorum
func (s *Svc) Confirm(ctx context.Context, in domain.ConfirmInput) (domain.Result, error) {
	if _, err := uuid.Parse(in.ApproverID); err != nil {
		return domain.Result{}, perr.InvalidArgf("invalid approver id %q", in.ApproverID)
	}

	if _, err := s.Repo.RevealState(ctx, in.Year); err != nil {
		if !perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Result{}, err
		}
		if err := s.charts.Recompute(ctx, in.Year); err != nil {
			return domain.Result{}, err
		}
	}

	var res domain.Result
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		st, err := r.LockChart(ctx, in.Year)
		if err != nil {
			return err
		}
		if st.Revealed {
			n, err := r.CountConfirmations(ctx, in.Year)
			if err != nil {
				return err
			}
			res = domain.Result{
				Year:            in.Year,
				Confirmations:   n,
				Revealed:        true,
				RevealedAt:      st.RevealedAt,
				AlreadyRevealed: true,
			}
			return nil
		}

		now := s.now().UTC()
		if err := r.InsertConfirmation(ctx, in.Year, in.ApproverID, now); err != nil {
			return err
		}
		n, err := r.CountConfirmations(ctx, in.Year)
		if err != nil {
			return err
		}

		res = domain.Result{Year: in.Year, Confirmations: n}
		if n >= domain.Quorum {
			if err := r.MarkRevealed(ctx, in.Year, now); err != nil {
				return err
			}
			res.Revealed = true
			res.RevealedAt = ptime.Ptr(now)
		}
		return nil
	})
	if err != nil {
		return domain.Result{}, err
	}

	if res.Revealed && !res.AlreadyRevealed {
		logger.C(ctx).Info().
			Int("year", in.Year).
			Int("confirmations", res.Confirmations).
			Msg("chart revealed")
	}
	return res, nil
}

// Revoke withdraws a confirmation. A never computed year is recomputed first,
// same as Confirm: there is nothing to withdraw yet, but the caller gets a
// zero-confirmation result instead of an error. Once the chart is revealed the
// call is a no-op: reveals are irreversible and confirmations become
// historical record
func (s *Svc) Revoke(ctx context.Context, in domain.RevokeInput) (domain.Result, error) {
	if _, err := uuid.Parse(in.ApproverID); err != nil {
		return domain.Result{}, perr.InvalidArgf("invalid approver id %q", in.ApproverID)
	}

	if _, err := s.Repo.RevealState(ctx, in.Year); err != nil {
		if !perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Result{}, err
		}
		if err := s.charts.Recompute(ctx, in.Year); err != nil {
			return domain.Result{}, err
		}
	}

	var res domain.Result
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		st, err := r.LockChart(ctx, in.Year)
		if err != nil {
			return err
		}
		if !st.Revealed {
			if err := r.DeleteConfirmation(ctx, in.Year, in.ApproverID); err != nil {
				return err
			}
		}

		n, err := r.CountConfirmations(ctx, in.Year)
		if err != nil {
			return err
		}
		res = domain.Result{
			Year:            in.Year,
			Confirmations:   n,
			Revealed:        st.Revealed,
			RevealedAt:      st.RevealedAt,
			AlreadyRevealed: st.Revealed,
		}
		return nil
	})
	if err != nil {
		return domain.Result{}, err
	}
	return res, nil
}

// Confirmations lists stored confirmations for a year, oldest first
func (s *Svc) Confirmations(ctx context.Context, year int) ([]domain.Confirmation, error) {
	return s.Repo.Confirmations(ctx, year)
}
