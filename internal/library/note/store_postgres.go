// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readlog/internal/platform/database/schema"
	"github.com/taibuivan/readlog/internal/platform/dberr"
)

// PostgresStore implements [Store] over library.note.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of [Store].
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var nt = schema.LibraryNote

func scanNote(row pgx.Row) (*Note, error) {
	note := &Note{}
	err := row.Scan(&note.ID, &note.UserID, &note.BookID, &note.Page, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	return note, err
}

func (store *PostgresStore) ListForBook(context context.Context, userID, bookID string) ([]*Note, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s ASC NULLS FIRST, %s ASC`,
		schema.List("", nt.Columns()...), nt.Table,
		nt.UserID, nt.BookID, nt.Page, nt.CreatedAt,
	)

	rows, err := store.pool.Query(context, query, userID, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_notes")
	}

	notes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Note, error) {
		return scanNote(row)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_notes")
	}
	return notes, nil
}

func (store *PostgresStore) FindByID(context context.Context, id string) (*Note, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, schema.List("", nt.Columns()...), nt.Table, nt.ID)

	note, err := scanNote(store.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, dberr.Wrap(err, "find_note")
	}
	return note, nil
}

func (store *PostgresStore) Create(context context.Context, note *Note) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s`,
		nt.Table, nt.ID, nt.UserID, nt.BookID, nt.Page, nt.Content,
		nt.CreatedAt, nt.UpdatedAt,
	)

	err := store.pool.QueryRow(context, query, note.ID, note.UserID, note.BookID, note.Page, note.Content).
		Scan(&note.CreatedAt, &note.UpdatedAt)
	return dberr.Wrap(err, "create_note")
}

func (store *PostgresStore) Update(context context.Context, note *Note) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = NOW()
		WHERE %s = $3 AND %s = $4
		RETURNING %s`,
		nt.Table, nt.Page, nt.Content, nt.UpdatedAt,
		nt.ID, nt.UserID,
		nt.UpdatedAt,
	)

	err := store.pool.QueryRow(context, query, note.Page, note.Content, note.ID, note.UserID).Scan(&note.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoteNotFound
	}
	return dberr.Wrap(err, "update_note")
}

func (store *PostgresStore) Delete(context context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, nt.Table, nt.ID, nt.UserID)

	command, err := store.pool.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_note")
	}
	if command.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}
