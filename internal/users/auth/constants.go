// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the lifetime of a JWT access token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the lifetime of a refresh-token session.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	// Password bounds. bcrypt ignores input past 72 bytes.
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// Username bounds.
	MinUsernameLength = 3
	MaxUsernameLength = 32

	// MaxDisplayNameLength matches users.account.displayname.
	MaxDisplayNameLength = 100
)
