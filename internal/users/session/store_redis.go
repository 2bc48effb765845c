// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPrefixSession is the key prefix for persisted session envelopes.
const RedisPrefixSession = "session:envelope:"

// RedisSessionStorage implements [SessionStorage] on Redis.
//
// Used when the shell is embedded in a host that shares one session across
// processes (a BFF or kiosk deployment). The entry expires together with the
// access token, so Redis garbage-collects stale sessions on its own.
type RedisSessionStorage struct {
	client *redis.Client
	// clientID scopes the key so multiple shells can share one Redis.
	clientID string
	logger   *slog.Logger
}

// NewRedisSessionStorage creates a Redis-backed [SessionStorage] scoped to clientID.
func NewRedisSessionStorage(client *redis.Client, clientID string, logger *slog.Logger) *RedisSessionStorage {
	return &RedisSessionStorage{client: client, clientID: clientID, logger: logger}
}

// key returns the scoped Redis key for this shell's session record.
func (storage *RedisSessionStorage) key() string {
	return RedisPrefixSession + storage.clientID
}

/*
Save persists the session envelope, replacing any previous record.

Description: The TTL tracks the envelope's expiry so the record disappears
together with its token.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Marshal or connectivity failures
*/
func (storage *RedisSessionStorage) Save(context context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session_redis_marshal_failed: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}

	if err := storage.client.Set(context, storage.key(), payload, ttl).Err(); err != nil {
		return fmt.Errorf("session_redis_set_failed: %w", err)
	}

	return nil
}

/*
Load retrieves the persisted session envelope.

Description: A missing key reports an absent session. An unparsable payload is
self-healing: the corrupt entry is deleted and reported as absent. Parse
failures never reach the caller.

Parameters:
  - context: context.Context

Returns:
  - *Session: The stored record, or nil when absent
  - error: Connectivity failures
*/
func (storage *RedisSessionStorage) Load(context context.Context) (*Session, error) {
	payload, err := storage.client.Get(context, storage.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("session_redis_get_failed: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		// Corrupt payload: clear it so the next load starts clean.
		storage.logger.Warn("session_redis_corrupt", slog.Any("error", err))
		if delErr := storage.client.Del(context, storage.key()).Err(); delErr != nil {
			storage.logger.Warn("session_redis_del_failed", slog.Any("error", delErr))
		}
		return nil, nil
	}

	return &session, nil
}

/*
Clear removes the persisted session record. Idempotent.

Parameters:
  - context: context.Context

Returns:
  - error: Connectivity failures
*/
func (storage *RedisSessionStorage) Clear(context context.Context) error {
	if err := storage.client.Del(context, storage.key()).Err(); err != nil {
		return fmt.Errorf("session_redis_del_failed: %w", err)
	}

	return nil
}
