// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readlog/internal/platform/database/schema"
	"github.com/taibuivan/readlog/internal/platform/dberr"
)

// PostgresStore implements [Store] with one round trip per call.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of [Store].
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var (
	rr = schema.LibraryReadingRecord
	nt = schema.LibraryNote
)

// Totals sends the shelf, monthly and note queries as a single pgx batch.
func (store *PostgresStore) Totals(context context.Context, userID string, year int) (*Totals, error) {
	totals := &Totals{}
	batch := &pgx.Batch{}

	shelves := fmt.Sprintf(`
		SELECT
			count(*) FILTER (WHERE %[1]s = 'want_to_read'),
			count(*) FILTER (WHERE %[1]s = 'reading'),
			count(*) FILTER (WHERE %[1]s = 'read'),
			COALESCE(sum(%[2]s), 0),
			count(%[3]s),
			COALESCE(sum(%[3]s), 0)
		FROM %[4]s WHERE %[5]s = $1`,
		rr.Status, rr.CurrentPage, rr.Rating, rr.Table, rr.UserID,
	)
	batch.Queue(shelves, userID).QueryRow(func(row pgx.Row) error {
		return row.Scan(
			&totals.ByStatus.WantToRead, &totals.ByStatus.Reading, &totals.ByStatus.Read,
			&totals.PagesRead, &totals.RatingsGiven, &totals.RatingSum,
		)
	})

	monthly := fmt.Sprintf(`
		SELECT EXTRACT(MONTH FROM %[1]s)::int, count(*)
		FROM %[2]s
		WHERE %[3]s = $1 AND %[4]s = 'read'
		  AND %[1]s >= make_date($2, 1, 1) AND %[1]s < make_date($2 + 1, 1, 1)
		GROUP BY 1`,
		rr.FinishedAt, rr.Table, rr.UserID, rr.Status,
	)
	batch.Queue(monthly, userID, year).Query(func(rows pgx.Rows) error {
		for rows.Next() {
			var month, count int
			if err := rows.Scan(&month, &count); err != nil {
				return err
			}
			if month >= 1 && month <= 12 {
				totals.FinishedByMonth[month-1] = count
			}
		}
		return rows.Err()
	})

	notes := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, nt.Table, nt.UserID)
	batch.Queue(notes, userID).QueryRow(func(row pgx.Row) error {
		return row.Scan(&totals.NotesCount)
	})

	if err := store.pool.SendBatch(context, batch).Close(); err != nil {
		return nil, dberr.Wrap(err, "library_stats")
	}
	return totals, nil
}
