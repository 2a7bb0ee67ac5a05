// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/readlog/internal/platform/apperr"
)

var (
	// ErrUserNotFound is returned by [UserRepository] lookups.
	ErrUserNotFound = apperr.NotFound("User")

	// ErrSessionNotFound is returned for unknown, revoked or expired sessions.
	ErrSessionNotFound = apperr.NotFound("Session")
)

// # User Data Access

// UserRepository defines the data access contract for reader accounts.
type UserRepository interface {

	/*
		FindByID returns the live account with the given ID.

		Returns:
		  - error: [ErrUserNotFound]
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByLogin matches the username or the email, case-insensitively.

		Returns:
		  - error: [ErrUserNotFound]
	*/
	FindByLogin(context context.Context, login string) (*User, error)

	/*
		Taken reports which of username and email already belong to a live account.

		Returns:
		  - usernameTaken, emailTaken: bool
	*/
	Taken(context context.Context, username, email string) (usernameTaken, emailTaken bool, err error)

	// Create persists a new account and writes back its timestamps.
	Create(context context.Context, user *User) error

	// UpdatePassword replaces only the password hash.
	UpdatePassword(context context.Context, userID, passwordHash string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {

	// Create persists a new session.
	Create(context context.Context, session *Session) error

	/*
		FindActive returns the unrevoked, unexpired session with the given token hash.

		Returns:
		  - error: [ErrSessionNotFound]
	*/
	FindActive(context context.Context, tokenHash string) (*Session, error)

	/*
		Revoke marks one session revoked. Revoking an already revoked session fails,
		so a refresh token can be rotated at most once.

		Returns:
		  - error: [ErrSessionNotFound]
	*/
	Revoke(context context.Context, sessionID string) error

	// RevokeAllExcept revokes every live session of userID except keepID (may be empty).
	RevokeAllExcept(context context.Context, userID, keepID string) error
}
