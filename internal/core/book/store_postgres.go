// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readlog/internal/platform/database/schema"
	"github.com/taibuivan/readlog/internal/platform/dberr"
	"github.com/taibuivan/readlog/internal/platform/validate"
	"github.com/taibuivan/readlog/pkg/uuid"
)

// PostgresStore implements [Store] over catalog.book.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of [Store].
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var bk = schema.CatalogBook

func scanBook(row pgx.Row) (*Book, error) {
	book := &Book{}
	err := row.Scan(
		&book.ID, &book.Slug, &book.Title, &book.Author, &book.Description, &book.ISBN13, &book.ISBN10,
		&book.PageCount, &book.CoverURL, &book.PublishedYear, &book.Source, &book.ExternalID,
		&book.CreatedAt, &book.UpdatedAt,
	)
	return book, err
}

// FindByID retrieves a book. Malformed IDs are reported as not found.
func (store *PostgresStore) FindByID(context context.Context, id string) (*Book, error) {
	if !uuid.Valid(id) {
		return nil, errBookNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, schema.List("", bk.Columns()...), bk.Table, bk.ID)

	book, err := scanBook(store.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find_book", "Book")
	}
	return book, nil
}

// TotalPages reads only the page count column.
func (store *PostgresStore) TotalPages(context context.Context, id string) (*int, error) {
	if !uuid.Valid(id) {
		return nil, errBookNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, bk.PageCount, bk.Table, bk.ID)

	var pages *int
	if err := store.pool.QueryRow(context, query, id).Scan(&pages); err != nil {
		return nil, dberr.WrapNotFound(err, "book_total_pages", "Book")
	}
	return pages, nil
}

// Search matches title or author with ILIKE, or the ISBN columns exactly.
func (store *PostgresStore) Search(context context.Context, query string, limit int) ([]*Book, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"
	isbn := validate.NormalizeISBN(query)

	sql := fmt.Sprintf(`
		SELECT %[1]s FROM %[2]s
		WHERE %[3]s ILIKE $1 OR %[4]s ILIKE $1 OR %[5]s = $2 OR %[6]s = $2
		ORDER BY %[3]s ASC, %[7]s ASC
		LIMIT $3`,
		schema.List("", bk.Columns()...), bk.Table,
		bk.Title, bk.Author, bk.ISBN13, bk.ISBN10, bk.ID,
	)

	rows, err := store.pool.Query(context, sql, pattern, isbn, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "search_books")
	}

	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Book, error) {
		return scanBook(row)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_books")
	}
	return books, nil
}

// Create inserts a manual book.
func (store *PostgresStore) Create(context context.Context, book *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s, %s`,
		bk.Table, bk.ID, bk.Slug, bk.Title, bk.Author, bk.Description, bk.ISBN13, bk.ISBN10,
		bk.PageCount, bk.CoverURL, bk.PublishedYear, bk.Source,
		bk.CreatedAt, bk.UpdatedAt,
	)

	err := store.pool.QueryRow(context, query,
		book.ID, book.Slug, book.Title, book.Author, book.Description, book.ISBN13, book.ISBN10,
		book.PageCount, book.CoverURL, book.PublishedYear, book.Source,
	).Scan(&book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_book")
	}
	return nil
}

/*
UpsertExternal relies on the partial unique index over (source, externalid).
On conflict the catalog metadata is refreshed but the row keeps its original ID.
*/
func (store *PostgresStore) UpsertExternal(context context.Context, book *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s, %[7]s, %[8]s, %[9]s, %[10]s, %[11]s, %[12]s, %[13]s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (%[12]s, %[13]s) WHERE %[13]s IS NOT NULL DO UPDATE SET
			%[4]s = EXCLUDED.%[4]s,
			%[5]s = EXCLUDED.%[5]s,
			%[6]s = EXCLUDED.%[6]s,
			%[7]s = EXCLUDED.%[7]s,
			%[8]s = EXCLUDED.%[8]s,
			%[9]s = EXCLUDED.%[9]s,
			%[10]s = EXCLUDED.%[10]s,
			%[11]s = EXCLUDED.%[11]s,
			%[15]s = NOW()
		RETURNING %[2]s, %[3]s, %[14]s, %[15]s`,
		bk.Table, bk.ID, bk.Slug, bk.Title, bk.Author, bk.Description, bk.ISBN13, bk.ISBN10,
		bk.PageCount, bk.CoverURL, bk.PublishedYear, bk.Source, bk.ExternalID,
		bk.CreatedAt, bk.UpdatedAt,
	)

	err := store.pool.QueryRow(context, query,
		book.ID, book.Slug, book.Title, book.Author, book.Description, book.ISBN13, book.ISBN10,
		book.PageCount, book.CoverURL, book.PublishedYear, book.Source, book.ExternalID,
	).Scan(&book.ID, &book.Slug, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "upsert_external_book")
	}
	return nil
}

// escapeLike neutralizes LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
