// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readlog/internal/platform/database/schema"
	"github.com/taibuivan/readlog/internal/platform/dberr"
)

var (
	ua = schema.UserAccount
	us = schema.UserSession
)

// # User Repository

// PostgresUserRepository implements [UserRepository] over users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.DisplayName, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		schema.List("", ua.Columns()...), ua.Table, ua.ID, ua.DeletedAt,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}
	return user, nil
}

// FindByLogin uses the LOWER() unique indexes on username and email.
func (repository *PostgresUserRepository) FindByLogin(context context.Context, login string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %[1]s FROM %[2]s
		WHERE (LOWER(%[3]s) = LOWER($1) OR LOWER(%[4]s) = LOWER($1)) AND %[5]s IS NULL
		LIMIT 1`,
		schema.List("", ua.Columns()...), ua.Table, ua.Username, ua.Email, ua.DeletedAt,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, login))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_login")
	}
	return user, nil
}

func (repository *PostgresUserRepository) Taken(context context.Context, username, email string) (bool, bool, error) {
	query := fmt.Sprintf(`
		SELECT
			EXISTS (SELECT 1 FROM %[1]s WHERE LOWER(%[2]s) = LOWER($1) AND %[4]s IS NULL),
			EXISTS (SELECT 1 FROM %[1]s WHERE LOWER(%[3]s) = LOWER($2) AND %[4]s IS NULL)`,
		ua.Table, ua.Username, ua.Email, ua.DeletedAt,
	)

	var usernameTaken, emailTaken bool
	if err := repository.pool.QueryRow(context, query, username, email).Scan(&usernameTaken, &emailTaken); err != nil {
		return false, false, dberr.Wrap(err, "check_user_identity")
	}
	return usernameTaken, emailTaken, nil
}

func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s`,
		ua.Table, ua.ID, ua.Username, ua.Email, ua.PasswordHash, ua.DisplayName,
		ua.CreatedAt, ua.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, user.ID, user.Username, user.Email, user.PasswordHash, user.DisplayName).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		ua.Table, ua.PasswordHash, ua.UpdatedAt, ua.ID, ua.DeletedAt,
	)

	command, err := repository.pool.Exec(context, query, userID, passwordHash)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if command.RowsAffected() == 0 {
		return ErrUserNotFound
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

func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`,
		us.Table, us.ID, us.UserID, us.TokenHash, us.UserAgent, us.IPAddress, us.ExpiresAt,
		us.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		session.ID, session.UserID, session.TokenHash, session.UserAgent, session.IPAddress, session.ExpiresAt,
	).Scan(&session.CreatedAt)
	return dberr.Wrap(err, "create_session")
}

func (repository *PostgresSessionRepository) FindActive(context context.Context, tokenHash string) (*Session, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s IS NULL AND %s > NOW()`,
		schema.List("", us.Columns()...), us.Table,
		us.TokenHash, us.RevokedAt, us.ExpiresAt,
	)

	session := &Session{}
	err := repository.pool.QueryRow(context, query, tokenHash).Scan(
		&session.ID, &session.UserID, &session.TokenHash, &session.UserAgent,
		&session.IPAddress, &session.ExpiresAt, &session.RevokedAt, &session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, dberr.Wrap(err, "find_session")
	}
	return session, nil
}

func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		us.Table, us.RevokedAt, us.ID, us.RevokedAt,
	)

	command, err := repository.pool.Exec(context, query, sessionID)
	if err != nil {
		return dberr.Wrap(err, "revoke_session")
	}
	if command.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (repository *PostgresSessionRepository) RevokeAllExcept(context context.Context, userID, keepID string) error {
	query := fmt.Sprintf(`
		UPDATE %[1]s SET %[2]s = NOW()
		WHERE %[3]s = $1 AND %[2]s IS NULL AND %[4]s IS DISTINCT FROM $2::uuid`,
		us.Table, us.RevokedAt, us.UserID, us.ID,
	)

	var keep *string
	if keepID != "" {
		keep = &keepID
	}

	_, err := repository.pool.Exec(context, query, userID, keep)
	return dberr.Wrap(err, "revoke_other_sessions")
}
