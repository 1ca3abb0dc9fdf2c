// Package repo provides postgres access for reveal confirmations
package repo

import (
	"context"
	"time"

	"waxpoll/internal/modkit/repokit"
	perr "waxpoll/internal/platform/errors"
	"waxpoll/internal/services/reveal/domain"
)

// RevealState is the locked view of a year's reveal flag
type RevealState struct {
	Revealed   bool
	RevealedAt *time.Time
}

// Repo is the persistence surface for the reveal state machine.
// LockChart, InsertConfirmation, CountConfirmations, and MarkRevealed are
// meant to run on a repo bound inside one transaction: the row lock taken by
// LockChart serializes concurrent quorum checks for the year
type Repo interface {
	// RevealState reads the flag without locking, or perr.ErrNotFound
	RevealState(ctx context.Context, year int) (RevealState, error)

	// LockChart takes a row lock on the year's chart and returns the flag
	LockChart(ctx context.Context, year int) (RevealState, error)

	// InsertConfirmation records an approver once; duplicates are no-ops
	InsertConfirmation(ctx context.Context, year int, approverID string, at time.Time) error

	// DeleteConfirmation removes an approver's confirmation if present
	DeleteConfirmation(ctx context.Context, year int, approverID string) error

	// CountConfirmations counts distinct approvers for the year
	CountConfirmations(ctx context.Context, year int) (int, error)

	// MarkRevealed flips the chart to revealed; a second call is a no-op
	// because of the revealed guard in the update
	MarkRevealed(ctx context.Context, year int, at time.Time) error

	// Confirmations lists confirmations oldest first
	Confirmations(ctx context.Context, year int) ([]domain.Confirmation, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

var _ Repo = (*queries)(nil)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) RevealState(ctx context.Context, year int) (RevealState, error) {
	return r.revealState(ctx, year, false)
}

func (r *queries) LockChart(ctx context.Context, year int) (RevealState, error) {
	return r.revealState(ctx, year, true)
}

func (r *queries) revealState(ctx context.Context, year int, lock bool) (RevealState, error) {
	sql := `select revealed, revealed_at from charts where year = $1`
	if lock {
		sql += ` for update`
	}
	var st RevealState
	if err := r.q.QueryRow(ctx, sql, year).Scan(&st.Revealed, &st.RevealedAt); err != nil {
		if perr.IsNoRows(err) {
			return RevealState{}, perr.NotFoundf("no chart for year %d", year)
		}
		return RevealState{}, perr.FromPostgres(err, "reveal state")
	}
	return st, nil
}

func (r *queries) InsertConfirmation(ctx context.Context, year int, approverID string, at time.Time) error {
	const sql = `
insert into chart_confirmations (year, approver_id, confirmed_at)
values ($1, $2, $3)
on conflict (year, approver_id) do nothing
`
	_, err := r.q.Exec(ctx, sql, year, approverID, at)
	return perr.FromPostgres(err, "insert confirmation")
}

func (r *queries) DeleteConfirmation(ctx context.Context, year int, approverID string) error {
	const sql = `delete from chart_confirmations where year = $1 and approver_id = $2`
	_, err := r.q.Exec(ctx, sql, year, approverID)
	return perr.FromPostgres(err, "delete confirmation")
}

func (r *queries) CountConfirmations(ctx context.Context, year int) (int, error) {
	const sql = `select count(distinct approver_id) from chart_confirmations where year = $1`
	var n int
	if err := r.q.QueryRow(ctx, sql, year).Scan(&n); err != nil {
		return 0, perr.FromPostgres(err, "count confirmations")
	}
	return n, nil
}

func (r *queries) MarkRevealed(ctx context.Context, year int, at time.Time) error {
	const sql = `
update charts
set revealed = true, revealed_at = $2
where year = $1 and not revealed
`
	_, err := r.q.Exec(ctx, sql, year, at)
	return perr.FromPostgres(err, "mark revealed")
}

func (r *queries) Confirmations(ctx context.Context, year int) ([]domain.Confirmation, error) {
	const sql = `
select approver_id::text, confirmed_at
from chart_confirmations
where year = $1
order by confirmed_at asc, approver_id asc
`
	rows, err := r.q.Query(ctx, sql, year)
	if err != nil {
		return nil, perr.FromPostgres(err, "list confirmations")
	}
	defer rows.Close()

	var out []domain.Confirmation
	for rows.Next() {
		var c domain.Confirmation
		if err := rows.Scan(&c.ApproverID, &c.ConfirmedAt); err != nil {
			return nil, perr.FromPostgres(err, "scan confirmation")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
