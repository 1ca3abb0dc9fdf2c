// Package repo provides postgres access for year charts
package repo

import (
	"context"
	"encoding/json"
	"time"

	corechart "waxpoll/internal/core/chart"
	"waxpoll/internal/core/scoring"
	"waxpoll/internal/modkit/repokit"
	perr "waxpoll/internal/platform/errors"
	"waxpoll/internal/services/chart/domain"
)

// Repo is the persistence surface for charts
type Repo interface {
	// ListEntries returns the current contributors' list rows for a year,
	// pre-filtered to positions inside the scoring cutoff
	ListEntries(ctx context.Context, year int) ([]corechart.Entry, error)

	// Upsert replaces data, stats, and computed_at for the year, leaving any
	// reveal state untouched; inserts default to unrevealed
	Upsert(
		ctx context.Context,
		year int,
		albums []corechart.RankedAlbum,
		stats corechart.Stats,
		participants int,
		computedAt time.Time,
	) error

	// Get returns the persisted record or perr.ErrNotFound
	Get(ctx context.Context, year int) (domain.Record, error)

	// ConfirmationCount counts distinct approver confirmations for the year
	ConfirmationCount(ctx context.Context, year int) (int, error)

	// RevealedYears lists revealed years, newest first
	RevealedYears(ctx context.Context) ([]int, error)
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

func (r *queries) ListEntries(ctx context.Context, year int) ([]corechart.Entry, error) {
	const sql = `
select l.id::text, u.id::text, u.display_name, li.position,
       coalesce(li.artist, ''), coalesce(li.album, ''),
       coalesce(li.album_mbid, ''), coalesce(li.release_date::text, ''),
       coalesce(li.country, ''), coalesce(li.genre1, ''), coalesce(li.genre2, ''),
       li.cover_image, coalesce(li.cover_format, '')
from chart_contributors cc
join users u on u.id = cc.user_id
join lists l on l.user_id = cc.user_id and l.year = cc.year
join list_items li on li.list_id = l.id
where cc.year = $1
and li.position between 1 and $2
order by u.id asc, li.position asc
`
	rows, err := r.q.Query(ctx, sql, year, scoring.MaxScoredPosition)
	if err != nil {
		return nil, perr.FromPostgres(err, "list entries")
	}
	defer rows.Close()

	var out []corechart.Entry
	for rows.Next() {
		var e corechart.Entry
		if err := rows.Scan(
			&e.SourceListID, &e.UserID, &e.DisplayName, &e.Position,
			&e.Artist, &e.Album,
			&e.AlbumMBID, &e.ReleaseDate,
			&e.Country, &e.Genre1, &e.Genre2,
			&e.CoverImage, &e.CoverFormat,
		); err != nil {
			return nil, perr.FromPostgres(err, "scan entry")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *queries) Upsert(
	ctx context.Context,
	year int,
	albums []corechart.RankedAlbum,
	stats corechart.Stats,
	participants int,
	computedAt time.Time,
) error {
	data, err := json.Marshal(albums)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "encode chart data")
	}
	st, err := json.Marshal(stats)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "encode chart stats")
	}

	const sql = `
insert into charts (year, data, stats, participant_count, computed_at)
values ($1, $2, $3, $4, $5)
on conflict (year) do update
set data = excluded.data,
    stats = excluded.stats,
    participant_count = excluded.participant_count,
    computed_at = excluded.computed_at
`
	_, err = r.q.Exec(ctx, sql, year, data, st, participants, computedAt)
	return perr.FromPostgres(err, "upsert chart")
}

func (r *queries) Get(ctx context.Context, year int) (domain.Record, error) {
	const sql = `
select year, data, stats, participant_count, computed_at, revealed, revealed_at
from charts
where year = $1
`
	var (
		rec   domain.Record
		data  []byte
		stats []byte
	)
	err := r.q.QueryRow(ctx, sql, year).Scan(
		&rec.Year, &data, &stats, &rec.ParticipantCount,
		&rec.ComputedAt, &rec.Revealed, &rec.RevealedAt,
	)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Record{}, perr.NotFoundf("no chart for year %d", year)
		}
		return domain.Record{}, perr.FromPostgres(err, "get chart")
	}
	if err := json.Unmarshal(data, &rec.Albums); err != nil {
		return domain.Record{}, perr.Wrap(err, perr.ErrorCodeUnknown, "decode chart data")
	}
	if err := json.Unmarshal(stats, &rec.Stats); err != nil {
		return domain.Record{}, perr.Wrap(err, perr.ErrorCodeUnknown, "decode chart stats")
	}
	return rec, nil
}

func (r *queries) ConfirmationCount(ctx context.Context, year int) (int, error) {
	const sql = `select count(distinct approver_id) from chart_confirmations where year = $1`
	var n int
	if err := r.q.QueryRow(ctx, sql, year).Scan(&n); err != nil {
		return 0, perr.FromPostgres(err, "count confirmations")
	}
	return n, nil
}

func (r *queries) RevealedYears(ctx context.Context) ([]int, error) {
	const sql = `select year from charts where revealed order by year desc`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, perr.FromPostgres(err, "revealed years")
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
