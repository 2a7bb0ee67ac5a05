// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/readlog/internal/users/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memoryProfiles struct {
	mu      sync.Mutex
	users   map[string]*auth.User
	deleted map[string]bool
}

func newMemoryProfiles(users ...*auth.User) *memoryProfiles {
	repo := &memoryProfiles{users: make(map[string]*auth.User), deleted: make(map[string]bool)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (repo *memoryProfiles) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok || repo.deleted[id] {
		return nil, auth.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (repo *memoryProfiles) EmailTaken(_ context.Context, email, exceptUserID string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for id, user := range repo.users {
		if id != exceptUserID && !repo.deleted[id] && strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (repo *memoryProfiles) Update(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.users[user.ID]; !ok || repo.deleted[user.ID] {
		return auth.ErrUserNotFound
	}
	user.UpdatedAt = user.UpdatedAt.Add(time.Second)
	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *memoryProfiles) SoftDelete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.users[id]; !ok || repo.deleted[id] {
		return auth.ErrUserNotFound
	}
	repo.deleted[id] = true
	return nil
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*auth.Session
}

func newMemorySessions(sessions ...*auth.Session) *memorySessions {
	repo := &memorySessions{sessions: make(map[string]*auth.Session)}
	for _, session := range sessions {
		repo.sessions[session.ID] = session
	}
	return repo
}

func (repo *memorySessions) ListActive(_ context.Context, userID string) ([]*auth.Session, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var active []*auth.Session
	for _, session := range repo.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			copied := *session
			active = append(active, &copied)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.After(active[j].CreatedAt) })
	return active, nil
}

func (repo *memorySessions) Revoke(_ context.Context, userID, sessionID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	session, ok := repo.sessions[sessionID]
	if !ok || session.UserID != userID || session.RevokedAt != nil {
		return ErrSessionNotFound
	}
	now := time.Now()
	session.RevokedAt = &now
	return nil
}

func (repo *memorySessions) RevokeAll(_ context.Context, userID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	now := time.Now()
	for _, session := range repo.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (repo *memorySessions) activeCount(userID string) int {
	sessions, _ := repo.ListActive(context.Background(), userID)
	return len(sessions)
}
