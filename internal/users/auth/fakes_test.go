// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]*User)}
}

func (repo *memoryUsers) FindByID(_ context.Context, id string) (*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (repo *memoryUsers) FindByLogin(_ context.Context, login string) (*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range repo.users {
		if strings.EqualFold(user.Username, login) || strings.EqualFold(user.Email, login) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (repo *memoryUsers) Taken(_ context.Context, username, email string) (bool, bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var usernameTaken, emailTaken bool
	for _, user := range repo.users {
		usernameTaken = usernameTaken || strings.EqualFold(user.Username, username)
		emailTaken = emailTaken || strings.EqualFold(user.Email, email)
	}
	return usernameTaken, emailTaken, nil
}

func (repo *memoryUsers) Create(_ context.Context, user *User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *memoryUsers) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[string]*Session), now: time.Now}
}

func (repo *memorySessions) Create(_ context.Context, session *Session) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	session.CreatedAt = repo.now()
	copied := *session
	repo.sessions[session.ID] = &copied
	return nil
}

func (repo *memorySessions) FindActive(_ context.Context, tokenHash string) (*Session, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, session := range repo.sessions {
		if session.TokenHash == tokenHash && session.RevokedAt == nil && session.ExpiresAt.After(repo.now()) {
			copied := *session
			return &copied, nil
		}
	}
	return nil, ErrSessionNotFound
}

func (repo *memorySessions) Revoke(_ context.Context, sessionID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	session, ok := repo.sessions[sessionID]
	if !ok || session.RevokedAt != nil {
		return ErrSessionNotFound
	}
	now := repo.now()
	session.RevokedAt = &now
	return nil
}

func (repo *memorySessions) RevokeAllExcept(_ context.Context, userID, keepID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	now := repo.now()
	for _, session := range repo.sessions {
		if session.UserID == userID && session.ID != keepID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (repo *memorySessions) active(userID string) int {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	count := 0
	for _, session := range repo.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			count++
		}
	}
	return count
}

// stubTokens encodes the subject in a readable fake token.
type stubTokens struct{}

func (stubTokens) GenerateAccessToken(userID, username string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("access:%s:%s:%s", userID, username, ttl), nil
}
