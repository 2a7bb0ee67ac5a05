// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readlog/internal/platform/database/schema"
	"github.com/taibuivan/readlog/internal/platform/dberr"
	"github.com/taibuivan/readlog/internal/users/auth"
)

var (
	ua = schema.UserAccount
	us = schema.UserSession
)

// # Profile Repository

// PostgresProfileRepository implements [ProfileRepository] over users.account.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new PostgreSQL implementation of [ProfileRepository].
func NewProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

func (repository *PostgresProfileRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		schema.List("", ua.Columns()...), ua.Table, ua.ID, ua.DeletedAt,
	)

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.DisplayName, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_profile")
	}
	return user, nil
}

func (repository *PostgresProfileRepository) EmailTaken(context context.Context, email, exceptUserID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE LOWER(%s) = LOWER($1) AND %s <> $2 AND %s IS NULL
		)`,
		ua.Table, ua.Email, ua.ID, ua.DeletedAt,
	)

	var taken bool
	if err := repository.pool.QueryRow(context, query, email, exceptUserID).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, "check_profile_email")
	}
	return taken, nil
}

// Update relies on the partial unique index on LOWER(email) to catch a concurrent claim.
func (repository *PostgresProfileRepository) Update(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s`,
		ua.Table, ua.DisplayName, ua.Email, ua.UpdatedAt,
		ua.ID, ua.DeletedAt,
		ua.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, user.ID, user.DisplayName, user.Email).Scan(&user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.ErrUserNotFound
	}
	return dberr.Wrap(err, "update_profile")
}

func (repository *PostgresProfileRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW(), %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		ua.Table, ua.DeletedAt, ua.UpdatedAt, ua.ID, ua.DeletedAt,
	)

	command, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "soft_delete_account")
	}
	if command.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// # Session Repository

// PostgresSessionRepository implements [SessionRepository] over users.session.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of [SessionRepository].
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

func (repository *PostgresSessionRepository) ListActive(context context.Context, userID string) ([]*auth.Session, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s IS NULL AND %s > NOW()
		ORDER BY %s DESC`,
		schema.List("", us.Columns()...), us.Table,
		us.UserID, us.RevokedAt, us.ExpiresAt,
		us.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sessions")
	}

	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*auth.Session, error) {
		session := &auth.Session{}
		err := row.Scan(
			&session.ID, &session.UserID, &session.TokenHash, &session.UserAgent,
			&session.IPAddress, &session.ExpiresAt, &session.RevokedAt, &session.CreatedAt,
		)
		return session, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_sessions")
	}
	return sessions, nil
}

func (repository *PostgresSessionRepository) Revoke(context context.Context, userID, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		us.Table, us.RevokedAt, us.ID, us.UserID, us.RevokedAt,
	)

	command, err := repository.pool.Exec(context, query, sessionID, userID)
	if err != nil {
		return dberr.Wrap(err, "revoke_user_session")
	}
	if command.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		us.Table, us.RevokedAt, us.UserID, us.RevokedAt,
	)

	_, err := repository.pool.Exec(context, query, userID)
	return dberr.Wrap(err, "revoke_all_sessions")
}
