// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account lets a signed-in reader manage their own identity: edit the
profile, delete the account and review or revoke the devices holding a
refresh token.

It reuses the [auth.User] and [auth.Session] entities; only auth creates them.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/readlog/internal/users/auth"
)

// # Domain Entities

// SessionInfo is the transport view of a session. The token hash never leaves the server.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IsCurrent bool      `json:"is_current"`
}

// UpdateProfileInput holds the mutable profile fields. Nil means unchanged.
type UpdateProfileInput struct {
	DisplayName *string
	Email       *string
}

// ErrSessionNotFound is returned when a session is missing, revoked or owned by someone else.
var ErrSessionNotFound = auth.ErrSessionNotFound

// # Repository Contracts

// ProfileRepository defines the persistence contract for users.account.
type ProfileRepository interface {
	FindByID(context context.Context, id string) (*auth.User, error)

	// EmailTaken reports whether another live account already uses email.
	EmailTaken(context context.Context, email, exceptUserID string) (bool, error)

	/*
		Update persists DisplayName and Email and refreshes UpdatedAt on user.

		Returns:
		  - error: auth.ErrUserNotFound when the account is gone
	*/
	Update(context context.Context, user *auth.User) error

	SoftDelete(context context.Context, id string) error
}

// SessionRepository defines session visibility and revocation for one owner.
type SessionRepository interface {
	// ListActive returns unrevoked, unexpired sessions, newest first.
	ListActive(context context.Context, userID string) ([]*auth.Session, error)

	/*
		Revoke revokes one session owned by userID.

		Returns:
		  - error: ErrSessionNotFound when no live session matches both ids
	*/
	Revoke(context context.Context, userID, sessionID string) error

	RevokeAll(context context.Context, userID string) error
}
