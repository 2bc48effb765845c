// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levutran/ripple/internal/platform/apperr"
	"github.com/levutran/ripple/internal/platform/sec"
	"github.com/levutran/ripple/internal/users/session"
	"github.com/levutran/ripple/pkg/pointer"
)

func newTestService(t *testing.T) (*session.Service, session.SessionStorage, *sec.TokenService) {
	t.Helper()

	auth, err := session.NewMemoryAuthService()
	require.NoError(t, err)

	tokens, err := sec.NewTokenService("test-secret", session.TokenIssuer)
	require.NoError(t, err)

	storage := session.NewFileSessionStorage(filepath.Join(t.TempDir(), "session.json"), testLogger())

	return session.NewService(auth, storage, tokens, testLogger()), storage, tokens
}

// assertInvariant checks that authentication and user presence agree.
func assertInvariant(t *testing.T, service *session.Service) {
	t.Helper()

	state := service.Snapshot()
	assert.Equal(t, state.User != nil, state.IsAuthenticated,
		"IsAuthenticated must equal user presence")
}

/*
TestService_LoginDemo authenticates the seeded demo account.
*/
func TestService_LoginDemo(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Login(ctx, session.DemoEmail, session.DemoPassword))

	state := service.Snapshot()
	assert.True(t, state.IsAuthenticated)
	assert.False(t, state.IsLoading)
	assert.Nil(t, state.Err)
	require.NotNil(t, state.User)
	assert.Equal(t, "demo", state.User.Username)
	assert.True(t, state.User.Verified)
	assertInvariant(t, service)
}

/*
TestService_LoginFailure rejects bad credentials, retains the error for the
login surface, and stays unauthenticated.
*/
func TestService_LoginFailure(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{
			name:     "wrong password",
			email:    session.DemoEmail,
			password: "wrong",
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: session.DemoPassword,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			service, _, _ := newTestService(t)

			err := service.Login(context.Background(), test.email, test.password)

			require.Error(t, err)
			assert.True(t, apperr.IsUnauthorized(err))

			state := service.Snapshot()
			assert.False(t, state.IsAuthenticated)
			assert.False(t, state.IsLoading)
			require.NotNil(t, state.Err)
			assert.Equal(t, "UNAUTHORIZED", state.Err.Code)
			assertInvariant(t, service)
		})
	}
}

/*
TestService_LoginClearsPreviousError starts a fresh attempt with no stale
error from the previous failure.
*/
func TestService_LoginClearsPreviousError(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	require.Error(t, service.Login(ctx, session.DemoEmail, "wrong"))
	require.NotNil(t, service.Snapshot().Err)

	require.NoError(t, service.Login(ctx, session.DemoEmail, session.DemoPassword))
	assert.Nil(t, service.Snapshot().Err)
	assertInvariant(t, service)
}

/*
TestService_ClearError drops the retained error without touching the session.
*/
func TestService_ClearError(t *testing.T) {
	service, _, _ := newTestService(t)

	require.Error(t, service.Login(context.Background(), session.DemoEmail, "wrong"))

	service.ClearError()

	state := service.Snapshot()
	assert.Nil(t, state.Err)
	assert.False(t, state.IsAuthenticated)
}

/*
TestService_Register enrolls a new account and authenticates it immediately
with zeroed counters and unverified status.
*/
func TestService_Register(t *testing.T) {
	service, _, _ := newTestService(t)

	err := service.Register(context.Background(), session.RegisterInput{
		Username:        "maya-dev",
		Email:           "maya@example.com",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		DisplayName:     "Maya",
	})
	require.NoError(t, err)

	state := service.Snapshot()
	require.True(t, state.IsAuthenticated)
	assert.Equal(t, "maya-dev", state.User.Username)
	assert.False(t, state.User.Verified)
	assert.Zero(t, state.User.FollowersCount)
	assert.Zero(t, state.User.PostsCount)
	assertInvariant(t, service)
}

/*
TestService_RegisterValidation rejects invalid input before any collaborator
call; the store stays unauthenticated.
*/
func TestService_RegisterValidation(t *testing.T) {
	valid := session.RegisterInput{
		Username:        "maya-dev",
		Email:           "maya@example.com",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		DisplayName:     "Maya",
	}

	tests := []struct {
		name   string
		mutate func(input *session.RegisterInput)
	}{
		{
			name:   "password mismatch",
			mutate: func(input *session.RegisterInput) { input.ConfirmPassword = "different" },
		},
		{
			name:   "short password",
			mutate: func(input *session.RegisterInput) { input.Password, input.ConfirmPassword = "short", "short" },
		},
		{
			name:   "invalid username",
			mutate: func(input *session.RegisterInput) { input.Username = "Bad User!" },
		},
		{
			name:   "invalid email",
			mutate: func(input *session.RegisterInput) { input.Email = "not-an-email" },
		},
		{
			name:   "missing display name",
			mutate: func(input *session.RegisterInput) { input.DisplayName = "" },
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			service, _, _ := newTestService(t)

			input := valid
			test.mutate(&input)

			err := service.Register(context.Background(), input)

			require.Error(t, err)
			appErr := apperr.As(err)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			assert.False(t, service.IsAuthenticated())
			assertInvariant(t, service)
		})
	}
}

/*
TestService_RegisterConflict rejects an already-enrolled identity.
*/
func TestService_RegisterConflict(t *testing.T) {
	service, _, _ := newTestService(t)

	err := service.Register(context.Background(), session.RegisterInput{
		Username:        "another",
		Email:           session.DemoEmail,
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		DisplayName:     "Another",
	})

	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.False(t, service.IsAuthenticated())
	assertInvariant(t, service)
}

/*
TestService_UpdateUser merges only the provided fields and re-persists the
envelope.
*/
func TestService_UpdateUser(t *testing.T) {
	service, storage, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Login(ctx, session.DemoEmail, session.DemoPassword))
	before := service.CurrentUser()

	err := service.UpdateUser(ctx, session.UpdateUserInput{
		DisplayName: pointer.To("Demo Renamed"),
		Bio:         pointer.To("New bio"),
	})
	require.NoError(t, err)

	after := service.CurrentUser()
	assert.Equal(t, "Demo Renamed", after.DisplayName)
	assert.Equal(t, "New bio", after.Bio)
	assert.Equal(t, before.Username, after.Username)
	assert.Equal(t, before.Email, after.Email)

	// The persisted envelope reflects the merge.
	envelope, err := storage.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, envelope)
	assert.Equal(t, "Demo Renamed", envelope.User.DisplayName)
}

/*
TestService_UpdateUserRejectsEmptyUsername keeps identity keys structurally
valid: an explicit empty username is a validation error, not a merge.
*/
func TestService_UpdateUserRejectsEmptyUsername(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Login(ctx, session.DemoEmail, session.DemoPassword))

	err := service.UpdateUser(ctx, session.UpdateUserInput{Username: pointer.To("")})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Equal(t, "demo", service.CurrentUser().Username)
}

/*
TestService_UpdateUserUnauthenticated is a silent no-op.
*/
func TestService_UpdateUserUnauthenticated(t *testing.T) {
	service, _, _ := newTestService(t)

	err := service.UpdateUser(context.Background(), session.UpdateUserInput{
		DisplayName: pointer.To("Ghost"),
	})

	require.NoError(t, err)
	assert.False(t, service.IsAuthenticated())
	assertInvariant(t, service)
}

/*
TestService_Logout clears the in-memory session and the persisted record.
*/
func TestService_Logout(t *testing.T) {
	service, storage, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Login(ctx, session.DemoEmail, session.DemoPassword))
	require.True(t, service.IsAuthenticated())

	service.Logout(ctx)

	assert.False(t, service.IsAuthenticated())
	assertInvariant(t, service)

	envelope, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, envelope)
}

/*
TestService_CheckAuthRoundTrip rehydrates the session a fresh store instance
from the envelope a previous login persisted.
*/
func TestService_CheckAuthRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := session.NewFileSessionStorage(path, testLogger())

	auth, err := session.NewMemoryAuthService()
	require.NoError(t, err)
	tokens, err := sec.NewTokenService("test-secret", session.TokenIssuer)
	require.NoError(t, err)

	ctx := context.Background()

	first := session.NewService(auth, storage, tokens, testLogger())
	require.NoError(t, first.Login(ctx, session.DemoEmail, session.DemoPassword))

	// A new process start: same storage, fresh store.
	second := session.NewService(auth, storage, tokens, testLogger())
	second.CheckAuth(ctx)

	state := second.Snapshot()
	require.True(t, state.IsAuthenticated)
	assert.Equal(t, "demo", state.User.Username)
	assertInvariant(t, second)
}

/*
TestService_CheckAuthAbsent resolves to a clean unauthenticated state when no
record exists.
*/
func TestService_CheckAuthAbsent(t *testing.T) {
	service, _, _ := newTestService(t)

	service.CheckAuth(context.Background())

	state := service.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.Err)
	assertInvariant(t, service)
}

/*
TestService_CheckAuthCorruptRecord recovers silently: the unreadable record is
cleared and the store comes up unauthenticated with no error.
*/
func TestService_CheckAuthCorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := session.NewFileSessionStorage(path, testLogger())
	require.NoError(t, os.WriteFile(path, []byte("{\"user\": 42, truncated"), 0o600))

	auth, err := session.NewMemoryAuthService()
	require.NoError(t, err)
	tokens, err := sec.NewTokenService("test-secret", session.TokenIssuer)
	require.NoError(t, err)

	service := session.NewService(auth, storage, tokens, testLogger())
	ctx := context.Background()

	service.CheckAuth(ctx)

	state := service.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.Err)

	// The record is gone; the next launch starts clean.
	envelope, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, envelope)
}

/*
TestService_CheckAuthExpiredToken invalidates the whole record when its access
token has expired.
*/
func TestService_CheckAuthExpiredToken(t *testing.T) {
	service, storage, tokens := newTestService(t)
	ctx := context.Background()

	expired, err := tokens.GenerateAccessToken("1", "demo", -time.Hour)
	require.NoError(t, err)
	require.NoError(t, storage.Save(ctx, &session.Session{
		User:        session.User{ID: "1", Username: "demo"},
		AccessToken: expired,
		ExpiresAt:   time.Now().Add(-time.Hour),
	}))

	service.CheckAuth(ctx)

	assert.False(t, service.IsAuthenticated())
	assertInvariant(t, service)

	envelope, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, envelope)
}

/*
TestService_CheckAuthForeignToken rejects an envelope signed with a different
secret.
*/
func TestService_CheckAuthForeignToken(t *testing.T) {
	service, storage, _ := newTestService(t)
	ctx := context.Background()

	foreign, err := sec.NewTokenService("other-secret", session.TokenIssuer)
	require.NoError(t, err)
	token, err := foreign.GenerateAccessToken("1", "demo", time.Hour)
	require.NoError(t, err)

	require.NoError(t, storage.Save(ctx, &session.Session{
		User:        session.User{ID: "1", Username: "demo"},
		AccessToken: token,
		ExpiresAt:   time.Now().Add(time.Hour),
	}))

	service.CheckAuth(ctx)

	assert.False(t, service.IsAuthenticated())
	assertInvariant(t, service)
}
