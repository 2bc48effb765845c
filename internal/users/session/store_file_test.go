// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

package session_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levutran/ripple/internal/users/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestFileSessionStorage_RoundTrip saves an envelope and loads it back.
*/
func TestFileSessionStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := session.NewFileSessionStorage(path, testLogger())
	ctx := context.Background()

	saved := &session.Session{
		User:        session.User{ID: "1", Username: "demo", Email: "demo@example.com"},
		AccessToken: "token",
		ExpiresAt:   time.Now().Add(time.Hour).UTC(),
	}
	require.NoError(t, storage.Save(ctx, saved))

	loaded, err := storage.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "demo", loaded.User.Username)
	assert.Equal(t, "token", loaded.AccessToken)
}

/*
TestFileSessionStorage_AbsentFile reports no session without an error.
*/
func TestFileSessionStorage_AbsentFile(t *testing.T) {
	storage := session.NewFileSessionStorage(filepath.Join(t.TempDir(), "missing.json"), testLogger())

	loaded, err := storage.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

/*
TestFileSessionStorage_CorruptPayload self-heals: the unreadable record is
deleted and reported as absent, never as a parse error.
*/
func TestFileSessionStorage_CorruptPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	storage := session.NewFileSessionStorage(path, testLogger())

	loaded, err := storage.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// The corrupt record must be gone.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

/*
TestFileSessionStorage_ClearIdempotent clears twice without failure.
*/
func TestFileSessionStorage_ClearIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := session.NewFileSessionStorage(path, testLogger())
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, &session.Session{User: session.User{ID: "1"}}))
	require.NoError(t, storage.Clear(ctx))
	require.NoError(t, storage.Clear(ctx))

	loaded, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

/*
TestFileSessionStorage_SaveReplaces overwrites the previous record wholesale.
*/
func TestFileSessionStorage_SaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := session.NewFileSessionStorage(path, testLogger())
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, &session.Session{User: session.User{ID: "1", Username: "first"}}))
	require.NoError(t, storage.Save(ctx, &session.Session{User: session.User{ID: "2", Username: "second"}}))

	loaded, err := storage.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "second", loaded.User.Username)
}
