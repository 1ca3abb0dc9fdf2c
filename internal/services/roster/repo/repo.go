// Package repo provides postgres access for the contributor roster
package repo

import (
	"context"
	"time"

	"waxpoll/internal/modkit/repokit"
	perr "waxpoll/internal/platform/errors"
	"waxpoll/internal/services/roster/domain"
)

// Repo is the persistence surface for contributors and view markers.
// DeleteContributors and InsertContributors exist so the replace operation
// can run both halves on a repo bound inside one transaction
type Repo interface {
	Contributors(ctx context.Context, year int) ([]domain.Contributor, error)
	EligibleUsers(ctx context.Context, year int) ([]domain.EligibleUser, error)

	// AddContributor inserts one roster row; duplicates are no-ops
	AddContributor(ctx context.Context, year int, userID, addedBy string, at time.Time) error

	// RemoveContributor deletes one roster row if present
	RemoveContributor(ctx context.Context, year int, userID string) error

	// DeleteContributors clears the year's roster
	DeleteContributors(ctx context.Context, year int) error

	// InsertContributors bulk-inserts roster rows
	InsertContributors(ctx context.Context, year int, userIDs []string, addedBy string, at time.Time) error

	HasSeen(ctx context.Context, year int, userID string) (bool, error)
	MarkSeen(ctx context.Context, year int, userID string, at time.Time) error
	ResetSeen(ctx context.Context, year int, userID string) error
	ViewedYears(ctx context.Context, userID string) ([]int, error)
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

func (r *queries) Contributors(ctx context.Context, year int) ([]domain.Contributor, error) {
	const sql = `
select year, user_id::text, added_by::text, added_at
from chart_contributors
where year = $1
order by added_at asc, user_id asc
`
	rows, err := r.q.Query(ctx, sql, year)
	if err != nil {
		return nil, perr.FromPostgres(err, "list contributors")
	}
	defer rows.Close()

	var out []domain.Contributor
	for rows.Next() {
		var c domain.Contributor
		if err := rows.Scan(&c.Year, &c.UserID, &c.AddedBy, &c.AddedAt); err != nil {
			return nil, perr.FromPostgres(err, "scan contributor")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *queries) EligibleUsers(ctx context.Context, year int) ([]domain.EligibleUser, error) {
	const sql = `
select u.id::text, u.display_name, l.id::text,
       count(li.list_id)::int,
       (cc.user_id is not null)
from users u
join lists l on l.user_id = u.id and l.year = $1
left join list_items li on li.list_id = l.id
left join chart_contributors cc on cc.user_id = u.id and cc.year = $1
group by u.id, u.display_name, l.id, cc.user_id
order by u.display_name asc, u.id asc
`
	rows, err := r.q.Query(ctx, sql, year)
	if err != nil {
		return nil, perr.FromPostgres(err, "list eligible users")
	}
	defer rows.Close()

	var out []domain.EligibleUser
	for rows.Next() {
		var u domain.EligibleUser
		if err := rows.Scan(&u.UserID, &u.DisplayName, &u.ListID, &u.AlbumCount, &u.Contributor); err != nil {
			return nil, perr.FromPostgres(err, "scan eligible user")
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *queries) AddContributor(ctx context.Context, year int, userID, addedBy string, at time.Time) error {
	const sql = `
insert into chart_contributors (year, user_id, added_by, added_at)
values ($1, $2, $3, $4)
on conflict (year, user_id) do nothing
`
	_, err := r.q.Exec(ctx, sql, year, userID, addedBy, at)
	return perr.FromPostgres(err, "add contributor")
}

func (r *queries) RemoveContributor(ctx context.Context, year int, userID string) error {
	const sql = `delete from chart_contributors where year = $1 and user_id = $2`
	_, err := r.q.Exec(ctx, sql, year, userID)
	return perr.FromPostgres(err, "remove contributor")
}

func (r *queries) DeleteContributors(ctx context.Context, year int) error {
	const sql = `delete from chart_contributors where year = $1`
	_, err := r.q.Exec(ctx, sql, year)
	return perr.FromPostgres(err, "delete contributors")
}

func (r *queries) InsertContributors(
	ctx context.Context,
	year int,
	userIDs []string,
	addedBy string,
	at time.Time,
) error {
	const sql = `
insert into chart_contributors (year, user_id, added_by, added_at)
select $1, uid, $3, $4 from unnest($2::uuid[]) as uid
on conflict (year, user_id) do nothing
`
	_, err := r.q.Exec(ctx, sql, year, userIDs, addedBy, at)
	return perr.FromPostgres(err, "insert contributors")
}

func (r *queries) HasSeen(ctx context.Context, year int, userID string) (bool, error) {
	const sql = `select exists (select 1 from chart_views where year = $1 and user_id = $2)`
	var seen bool
	if err := r.q.QueryRow(ctx, sql, year, userID).Scan(&seen); err != nil {
		return false, perr.FromPostgres(err, "has seen")
	}
	return seen, nil
}

func (r *queries) MarkSeen(ctx context.Context, year int, userID string, at time.Time) error {
	const sql = `
insert into chart_views (year, user_id, viewed_at)
values ($1, $2, $3)
on conflict (year, user_id) do nothing
`
	_, err := r.q.Exec(ctx, sql, year, userID, at)
	return perr.FromPostgres(err, "mark seen")
}

func (r *queries) ResetSeen(ctx context.Context, year int, userID string) error {
	const sql = `delete from chart_views where year = $1 and user_id = $2`
	_, err := r.q.Exec(ctx, sql, year, userID)
	return perr.FromPostgres(err, "reset seen")
}

func (r *queries) ViewedYears(ctx context.Context, userID string) ([]int, error) {
	const sql = `select year from chart_views where user_id = $1 order by year desc`
	rows, err := r.q.Query(ctx, sql, userID)
	if err != nil {
		return nil, perr.FromPostgres(err, "viewed years")
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, perr.FromPostgres(err, "scan year")
		}
		out = append(out, y)
	}
	return out, rows.Err()
}
