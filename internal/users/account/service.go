// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/readlog/internal/platform/apperr"
	"github.com/taibuivan/readlog/internal/platform/sec"
	"github.com/taibuivan/readlog/internal/users/auth"
	"github.com/taibuivan/readlog/pkg/slice"
	"github.com/taibuivan/readlog/pkg/uuid"
)

// # Service Layer

// Service implements the self-service account use cases.
type Service struct {
	profiles ProfileRepository
	sessions SessionRepository
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(profiles ProfileRepository, sessions SessionRepository, logger *slog.Logger) *Service {
	return &Service{profiles: profiles, sessions: sessions, logger: logger}
}

// # Profile Management

/*
UpdateProfile applies a partial change to the caller's profile.

Returns:
  - *auth.User: The updated profile
  - error: Conflict when the new email belongs to another account
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.profiles.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
		if user.DisplayName == "" {
			user.DisplayName = user.Username
		}
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != user.Email {
			taken, err := service.profiles.EmailTaken(context, email, userID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperr.Conflict("Email is already registered")
			}
			user.Email = email
		}
	}

	if err := service.profiles.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))
	return user, nil
}

/*
DeleteAccount soft-deletes the caller's account after re-checking the password,
then signs out every device. The username and email become available again.
*/
func (service *Service) DeleteAccount(context context.Context, userID, password string) error {
	user, err := service.profiles.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return apperr.Unauthorized("Password is incorrect")
	}

	if err := service.profiles.SoftDelete(context, userID); err != nil {
		return err
	}

	// The account is already gone; a failed revoke only leaves sessions that can no longer refresh.
	if err := service.sessions.RevokeAll(context, userID); err != nil {
		service.logger.Warn("account_session_revoke_failed", slog.String("user_id", userID), slog.Any("error", err))
	}

	service.logger.Warn("user_account_deleted", slog.String("user_id", userID))
	return nil
}

// # Session Management

// ListSessions returns the caller's live sessions. currentTokenHash marks the requesting device.
func (service *Service) ListSessions(context context.Context, userID, currentTokenHash string) ([]SessionInfo, error) {
	sessions, err := service.sessions.ListActive(context, userID)
	if err != nil {
		return nil, err
	}

	return slice.Map(sessions, func(session *auth.Session) SessionInfo {
		return SessionInfo{
			ID:        session.ID,
			UserAgent: session.UserAgent,
			IPAddress: session.IPAddress,
			CreatedAt: session.CreatedAt,
			ExpiresAt: session.ExpiresAt,
			IsCurrent: currentTokenHash != "" && session.TokenHash == currentTokenHash,
		}
	}), nil
}

// RevokeSession signs out one of the caller's devices.
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	if !uuid.Valid(sessionID) {
		return ErrSessionNotFound
	}

	if err := service.sessions.Revoke(context, userID, sessionID); err != nil {
		return err
	}

	service.logger.Info("user_session_revoked",
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)
	return nil
}
