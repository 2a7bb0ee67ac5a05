// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readlog/internal/platform/database/schema"
	"github.com/taibuivan/readlog/internal/platform/dberr"
	"github.com/taibuivan/readlog/internal/platform/postgres"
)

// PostgresStore implements [Store] over library.readingrecord.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of [Store].
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var (
	rr = schema.LibraryReadingRecord
	bk = schema.CatalogBook
)

func scanRecord(row pgx.Row, record *Record, extra ...any) error {
	targets := []any{
		&record.UserID, &record.BookID, &record.Status, &record.CurrentPage, &record.Rating,
		&record.ReviewText, &record.StartedAt, &record.FinishedAt, &record.CreatedAt, &record.UpdatedAt,
	}
	return row.Scan(append(targets, extra...)...)
}

// GetRecord returns the record keyed by (userID, bookID), or [ErrNoRecord].
func (store *PostgresStore) GetRecord(context context.Context, userID, bookID string) (*Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.List("", rr.Columns()...), rr.Table, rr.UserID, rr.BookID,
	)

	record := &Record{}
	if err := scanRecord(store.pool.QueryRow(context, query, userID, bookID), record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRecord
		}
		return nil, dberr.Wrap(err, "get_reading_record")
	}
	return record, nil
}

/*
UpsertRecord writes the record with INSERT ... ON CONFLICT (userid, bookid) DO UPDATE,
so repeated updates for a pair never create a second row.
*/
func (store *PostgresStore) UpsertRecord(context context.Context, record *Record) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s, %[7]s, %[8]s, %[9]s, %[10]s, %[11]s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (%[2]s, %[3]s) DO UPDATE SET
			%[4]s = EXCLUDED.%[4]s,
			%[5]s = EXCLUDED.%[5]s,
			%[6]s = EXCLUDED.%[6]s,
			%[7]s = EXCLUDED.%[7]s,
			%[8]s = EXCLUDED.%[8]s,
			%[9]s = EXCLUDED.%[9]s,
			%[11]s = NOW()
		RETURNING %[10]s, %[11]s`,
		rr.Table, rr.UserID, rr.BookID, rr.Status, rr.CurrentPage, rr.Rating,
		rr.ReviewText, rr.StartedAt, rr.FinishedAt, rr.CreatedAt, rr.UpdatedAt,
	)

	err := store.pool.QueryRow(context, query,
		record.UserID, record.BookID, record.Status, record.CurrentPage, record.Rating,
		record.ReviewText, record.StartedAt, record.FinishedAt,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	return dberr.Wrap(err, "upsert_reading_record")
}

// ListRatingsForBook returns every non-null rating recorded for bookID.
func (store *PostgresStore) ListRatingsForBook(context context.Context, bookID string) ([]UserRating, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 AND %s IS NOT NULL`,
		rr.UserID, rr.Rating, rr.Table, rr.BookID, rr.Rating,
	)

	rows, err := store.pool.Query(context, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_book_ratings")
	}

	ratings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (UserRating, error) {
		var rating UserRating
		err := row.Scan(&rating.UserID, &rating.Rating)
		return rating, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_book_ratings")
	}
	return ratings, nil
}

// ListLibrary returns the reader's records joined with catalog.book.
func (store *PostgresStore) ListLibrary(context context.Context, userID string, filter LibraryFilter, limit, offset int) ([]*LibraryEntry, int, error) {
	where := fmt.Sprintf(`r.%s = $1`, rr.UserID)
	args := []any{userID}
	if filter.Status != "" {
		where += fmt.Sprintf(` AND r.%s = $2`, rr.Status)
		args = append(args, filter.Status)
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s r WHERE %s`, rr.Table, where)

	var total int
	if err := store.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_library")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s r
		JOIN %s b ON b.%s = r.%s
		WHERE %s
		ORDER BY r.%s DESC, r.%s
		LIMIT $%d OFFSET $%d`,
		schema.List("r", rr.Columns()...),
		schema.List("b", bk.ID, bk.Title, bk.Author, bk.CoverURL, bk.PageCount),
		rr.Table, bk.Table, bk.ID, rr.BookID, where,
		rr.UpdatedAt, rr.BookID, len(args)+1, len(args)+2,
	)

	rows, err := store.pool.Query(context, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_library")
	}
	defer rows.Close()

	entries := make([]*LibraryEntry, 0, limit)
	for rows.Next() {
		entry := &LibraryEntry{}
		book := &entry.Book
		if err := scanRecord(rows, &entry.Record, &book.ID, &book.Title, &book.Author, &book.CoverURL, &book.PageCount); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_library_entry")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_library")
	}

	return entries, total, nil
}

// DeleteRecord removes the reader's notes on the book and then the record, in one transaction.
func (store *PostgresStore) DeleteRecord(context context.Context, userID, bookID string) error {
	notes := schema.LibraryNote

	return postgres.InTx(context, store.pool, func(tx pgx.Tx) error {
		deleteNotes := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, notes.Table, notes.UserID, notes.BookID)
		if _, err := tx.Exec(context, deleteNotes, userID, bookID); err != nil {
			return dberr.Wrap(err, "delete_library_notes")
		}

		deleteRecord := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, rr.Table, rr.UserID, rr.BookID)
		command, err := tx.Exec(context, deleteRecord, userID, bookID)
		if err != nil {
			return dberr.Wrap(err, "delete_reading_record")
		}
		if command.RowsAffected() == 0 {
			return ErrNoRecord
		}
		return nil
	})
}
