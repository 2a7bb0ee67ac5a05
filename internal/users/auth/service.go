// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/readlog/internal/platform/apperr"
	"github.com/taibuivan/readlog/internal/platform/sec"
	"github.com/taibuivan/readlog/pkg/uuid"
)

// # Contracts & Types

// TokenProvider signs access tokens. Implemented by [sec.TokenService].
type TokenProvider interface {
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)
}

var errInvalidCredentials = apperr.Unauthorized("Invalid login credentials")

// Service implements account and session use cases.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a new auth [Service].
func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
	}
}

// # Registration Flow

// RegisterInput holds the data required to create an account. It is validated by the handler.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

/*
Register hashes the password and persists a new account.

Returns:
  - *User: Created entity
  - error: Conflict when the username or email is in use
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	usernameTaken, emailTaken, err := service.users.Taken(context, input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, apperr.Conflict("Email is already registered")
	}
	if usernameTaken {
		return nil, apperr.Conflict("Username is already taken")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: hash password: %w", err))
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = input.Username
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        strings.ToLower(input.Email),
		PasswordHash: hashedPassword,
		DisplayName:  displayName,
	}
	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // username or email
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession is a freshly issued token pair.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login verifies credentials and opens a new session.

Unknown logins and wrong passwords return the same Unauthorized error.
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.users.FindByLogin(context, strings.TrimSpace(input.Login))
	if errors.Is(err, ErrUserNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.logger.Warn("login_failed", slog.String("user_id", user.ID), slog.String("ip", input.IPAddress))
		return nil, errInvalidCredentials
	}

	session, err := service.openSession(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

/*
RefreshSession rotates a refresh token: the presented session is revoked and a
new token pair is issued. A token that was already rotated is rejected.
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessions.FindActive(context, sec.HashToken(refreshToken))
	if errors.Is(err, ErrSessionNotFound) {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}
	if err != nil {
		return nil, err
	}

	if err := service.sessions.Revoke(context, session.ID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, err
	}

	user, err := service.users.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Account no longer exists")
	}

	return service.openSession(context, user, userAgent, ipAddress)
}

// Logout revokes the session behind refreshToken. Unknown tokens are ignored.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	session, err := service.sessions.FindActive(context, sec.HashToken(refreshToken))
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := service.sessions.Revoke(context, session.ID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}

	service.logger.Info("user_logged_out", slog.String("user_id", session.UserID))
	return nil
}

/*
ChangePassword verifies the current password, stores the new hash and revokes
every other session of the user. The session behind currentRefreshToken (if any)
stays valid.
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword, currentRefreshToken string) error {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth: hash password: %w", err))
	}
	if err := service.users.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	keepID := ""
	if currentRefreshToken != "" {
		if session, err := service.sessions.FindActive(context, sec.HashToken(currentRefreshToken)); err == nil && session.UserID == userID {
			keepID = session.ID
		}
	}
	if err := service.sessions.RevokeAllExcept(context, userID, keepID); err != nil {
		return err
	}

	service.logger.Info("password_changed", slog.String("user_id", userID))
	return nil
}

// Me returns the caller's profile.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.users.FindByID(context, userID)
}

// openSession issues an access token and persists a new refresh-token session.
func (service *Service) openSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Username, AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: sign access token: %w", err))
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: generate refresh token: %w", err))
	}

	expiresAt := service.now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}
	if err := service.sessions.Create(context, session); err != nil {
		return nil, err
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}
