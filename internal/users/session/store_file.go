// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileSessionStorage implements [SessionStorage] on a single JSON file.
//
// This is the default storage: the Go analog of the browser shell's local
// storage record, owned exclusively by the session [Service].
type FileSessionStorage struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewFileSessionStorage creates a file-backed [SessionStorage] at path.
func NewFileSessionStorage(path string, logger *slog.Logger) *FileSessionStorage {
	return &FileSessionStorage{path: path, logger: logger}
}

/*
Save persists the session envelope, replacing any previous record.

Description: Writes to a temporary sibling file and renames it into place, so
a crash mid-write can never leave a half-written session behind.

Parameters:
  - context: context.Context (unused; file IO has no cancellation point)
  - session: *Session

Returns:
  - error: IO failures
*/
func (storage *FileSessionStorage) Save(_ context.Context, session *Session) error {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session_file_marshal_failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(storage.path), 0o700); err != nil {
		return fmt.Errorf("session_file_mkdir_failed: %w", err)
	}

	// Atomic replace: temp write + rename.
	temp := storage.path + ".tmp"
	if err := os.WriteFile(temp, payload, 0o600); err != nil {
		return fmt.Errorf("session_file_write_failed: %w", err)
	}
	if err := os.Rename(temp, storage.path); err != nil {
		return fmt.Errorf("session_file_rename_failed: %w", err)
	}

	return nil
}

/*
Load retrieves the persisted session envelope.

Description: An absent file reports an absent session. An unparsable payload
is self-healing: the corrupt record is deleted and reported as absent, per the
storage corruption policy. Parse failures never reach the caller.

Parameters:
  - context: context.Context (unused)

Returns:
  - *Session: The stored record, or nil when absent
  - error: IO failures other than absence
*/
func (storage *FileSessionStorage) Load(_ context.Context) (*Session, error) {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	payload, err := os.ReadFile(storage.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("session_file_read_failed: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		// Corrupt payload: clear it so the next launch starts clean.
		storage.logger.Warn("session_file_corrupt", slog.Any("error", err))
		if removeErr := os.Remove(storage.path); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			storage.logger.Warn("session_file_remove_failed", slog.Any("error", removeErr))
		}
		return nil, nil
	}

	return &session, nil
}

/*
Clear removes the persisted session record. Idempotent.

Parameters:
  - context: context.Context (unused)

Returns:
  - error: IO failures other than absence
*/
func (storage *FileSessionStorage) Clear(_ context.Context) error {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	if err := os.Remove(storage.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session_file_clear_failed: %w", err)
	}

	return nil
}
