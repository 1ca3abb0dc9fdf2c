// Package service contains the chart workflows: recompute, read, status
package service

import (
	"context"
	"time"

	corechart "waxpoll/internal/core/chart"
	"waxpoll/internal/modkit/repokit"
	perr "waxpoll/internal/platform/errors"
	"waxpoll/internal/platform/logger"
	"waxpoll/internal/platform/store"
	"waxpoll/internal/services/chart/domain"
	"waxpoll/internal/services/chart/repo"
)

// historyTable receives one row per ranked album per recompute when a
// ClickHouse sink is configured
const historyTable = "chart_history"

// Service defines the chart service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the chart service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	// History is an optional analytics sink; nil disables it.
	// Never load-bearing: sink failures are logged and swallowed
	History store.Clickhouse

	// now is a seam for tests
	now func() time.Time
}

// New constructs a chart service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("chart.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("chart.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, now: time.Now}
}

// WithHistory attaches the optional ClickHouse history sink
func (s *Svc) WithHistory(ch store.Clickhouse) *Svc {
	s.History = ch
	return s
}

// Recompute rebuilds the year's chart from the current contributors' lists.
// Reads happen outside the transaction; the upsert is the single atomic
// write, so a failure mid-computation leaves the previous record intact.
// Safe to call arbitrarily often: same sources in, same chart out
func (s *Svc) Recompute(ctx context.Context, year int) (domain.Record, error) {
	entries, err := s.Repo.ListEntries(ctx, year)
	if err != nil {
		return domain.Record{}, err
	}

	participants := distinctUsers(entries)
	ranked := corechart.Rank(corechart.Aggregate(entries))
	stats := corechart.ComputeStats(ranked, participants, year)
	computedAt := s.now().UTC()

	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).Upsert(ctx, year, ranked, stats, participants, computedAt)
	})
	if err != nil {
		return domain.Record{}, err
	}

	logger.C(ctx).Info().
		Int("year", year).
		Int("albums", len(ranked)).
		Int("participants", participants).
		Msg("chart recomputed")

	s.appendHistory(ctx, year, ranked, computedAt)

	// reveal state must come from the store, not be assumed false
	return s.Repo.Get(ctx, year)
}

// Get returns the persisted chart record or a not found error
func (s *Svc) Get(ctx context.Context, year int) (domain.Record, error) {
	return s.Repo.Get(ctx, year)
}

// Status reports lifecycle facts. A year that was never computed is
// recomputed on the spot, the same recovery Confirm and Revoke apply, so the
// caller always sees a materialized record
func (s *Svc) Status(ctx context.Context, year int) (domain.Status, error) {
	rec, err := s.Repo.Get(ctx, year)
	if err != nil {
		if !perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Status{}, err
		}
		rec, err = s.Recompute(ctx, year)
		if err != nil {
			return domain.Status{}, err
		}
	}

	confirmations, err := s.Repo.ConfirmationCount(ctx, year)
	if err != nil {
		return domain.Status{}, err
	}

	computedAt := rec.ComputedAt
	return domain.Status{
		Year:          year,
		Exists:        true,
		Revealed:      rec.Revealed,
		RevealedAt:    rec.RevealedAt,
		ComputedAt:    &computedAt,
		Participants:  rec.ParticipantCount,
		Confirmations: confirmations,
	}, nil
}

// Stats returns the persisted statistics block for a computed year
func (s *Svc) Stats(ctx context.Context, year int) (corechart.Stats, error) {
	rec, err := s.Repo.Get(ctx, year)
	if err != nil {
		return corechart.Stats{}, err
	}
	return rec.Stats, nil
}

// RevealedYears lists years whose charts are public, newest first
func (s *Svc) RevealedYears(ctx context.Context) ([]int, error) {
	return s.Repo.RevealedYears(ctx)
}

// appendHistory writes one row per ranked album to the analytics sink
func (s *Svc) appendHistory(ctx context.Context, year int, ranked []corechart.RankedAlbum, computedAt time.Time) {
	if s.History == nil || len(ranked) == 0 {
		return
	}
	rows := make([][]any, 0, len(ranked))
	for _, ra := range ranked {
		rows = append(rows, []any{
			year, computedAt, ra.Rank, ra.Artist, ra.Album,
			int64(ra.TotalPoints), int64(ra.VoterCount), ra.AveragePosition,
		})
	}
	if err := s.History.Insert(ctx, historyTable, rows); err != nil {
		logger.C(ctx).Warn().Err(err).Int("year", year).Msg("chart history sink failed")
	}
}

func distinctUsers(entries []corechart.Entry) int {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.UserID] = struct{}{}
	}
	return len(seen)
}
