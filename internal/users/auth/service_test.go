// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readlog/internal/platform/apperr"
)

type authFixture struct {
	service  *Service
	users    *memoryUsers
	sessions *memorySessions
}

func newAuthFixture() *authFixture {
	users, sessions := newMemoryUsers(), newMemorySessions()
	return &authFixture{
		service:  NewService(users, sessions, stubTokens{}, discardLogger()),
		users:    users,
		sessions: sessions,
	}
}

func (fixture *authFixture) register(t *testing.T) *User {
	t.Helper()
	user, err := fixture.service.Register(context.Background(), RegisterInput{
		Username: "ursula",
		Email:    "Ursula@Example.com",
		Password: "earthsea-1968",
	})
	require.NoError(t, err)
	return user
}

func (fixture *authFixture) login(t *testing.T, login string) *LoginSession {
	t.Helper()
	session, err := fixture.service.Login(context.Background(), LoginInput{Login: login, Password: "earthsea-1968"})
	require.NoError(t, err)
	return session
}

func TestRegister(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t)

	assert.Equal(t, "ursula@example.com", user.Email)
	assert.Equal(t, "ursula", user.DisplayName)
	assert.NotEqual(t, "earthsea-1968", user.PasswordHash)

	_, err := fixture.service.Register(context.Background(), RegisterInput{Username: "URSULA", Email: "other@example.com", Password: "whatever-123"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = fixture.service.Register(context.Background(), RegisterInput{Username: "other", Email: "ursula@example.com", Password: "whatever-123"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestLogin(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t)

	byUsername := fixture.login(t, "ursula")
	byEmail := fixture.login(t, "URSULA@example.com")

	assert.Equal(t, user.ID, byUsername.User.ID)
	assert.Contains(t, byUsername.AccessToken, user.ID)
	assert.NotEqual(t, byUsername.RefreshToken, byEmail.RefreshToken)
	assert.Equal(t, 2, fixture.sessions.active(user.ID))
}

func TestLogin_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	fixture := newAuthFixture()
	fixture.register(t)

	_, wrongPassword := fixture.service.Login(context.Background(), LoginInput{Login: "ursula", Password: "nope-nope"})
	_, unknownUser := fixture.service.Login(context.Background(), LoginInput{Login: "ged", Password: "nope-nope"})

	require.Error(t, wrongPassword)
	assert.Equal(t, wrongPassword, unknownUser)
	assert.True(t, apperr.HasCode(wrongPassword, apperr.CodeUnauthorized))
}

func TestRefresh_RotatesOnce(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t)
	first := fixture.login(t, "ursula")

	second, err := fixture.service.RefreshSession(context.Background(), first.RefreshToken, "test-agent", "10.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, 1, fixture.sessions.active(user.ID))

	_, err = fixture.service.RefreshSession(context.Background(), first.RefreshToken, "test-agent", "10.0.0.1")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

func TestRefresh_ExpiredSession(t *testing.T) {
	fixture := newAuthFixture()
	fixture.register(t)
	session := fixture.login(t, "ursula")

	fixture.sessions.now = func() time.Time { return time.Now().Add(RefreshTokenTTL + time.Hour) }

	_, err := fixture.service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

func TestLogout(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t)
	session := fixture.login(t, "ursula")

	require.NoError(t, fixture.service.Logout(context.Background(), session.RefreshToken))
	assert.Zero(t, fixture.sessions.active(user.ID))

	assert.NoError(t, fixture.service.Logout(context.Background(), session.RefreshToken))
	assert.NoError(t, fixture.service.Logout(context.Background(), "never-issued"))
}

func TestChangePassword(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t)
	current := fixture.login(t, "ursula")
	fixture.login(t, "ursula")
	fixture.login(t, "ursula")

	err := fixture.service.ChangePassword(context.Background(), user.ID, "wrong-password", "tombs-of-atuan", current.RefreshToken)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
	assert.Equal(t, 3, fixture.sessions.active(user.ID))

	require.NoError(t, fixture.service.ChangePassword(context.Background(), user.ID, "earthsea-1968", "tombs-of-atuan", current.RefreshToken))
	assert.Equal(t, 1, fixture.sessions.active(user.ID))

	_, err = fixture.service.Login(context.Background(), LoginInput{Login: "ursula", Password: "tombs-of-atuan"})
	assert.NoError(t, err)
}

func TestMe(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t)

	me, err := fixture.service.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ursula", me.Username)

	_, err = fixture.service.Me(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
