// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/taxsetu/waflow/internal/session"
)

const (
	sessionKeyPrefix = "wa:session:"
	dedupeKeyPrefix  = "wa:msg:"

	// casRetries bounds the WATCH retry loop on contended saves. The
	// engine has its own reload-and-retry loop above this one.
	casRetries = 3
)

// RedisStore is a Redis-backed Repository and Deduper.
type RedisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string // Redis server address (host:port)
	Password string // Redis password (optional)
	DB       int    // Redis database number
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg RedisConfig, logger zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Info().
		Str("addr", cfg.Addr).
		Int("db", cfg.DB).
		Msg("connected to Redis session store")

	return &RedisStore{client: client, logger: logger}, nil
}

// NewRedisStoreFromClient wraps an existing client. Used by tests.
func NewRedisStoreFromClient(client *redis.Client, logger zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

func sessionKey(userID string) string { return sessionKeyPrefix + userID }

// Load fetches the session for userID, or ErrNotFound.
func (r *RedisStore) Load(ctx context.Context, userID string) (*session.Session, error) {
	raw, err := r.client.Get(ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var s session.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		// A corrupt record is unrecoverable; treat it as absent so the
		// user gets a fresh session instead of a dead conversation.
		r.logger.Warn().Err(err).Str("user_id", userID).Msg("corrupt session record, discarding")
		return nil, ErrNotFound
	}
	if s.Data == nil {
		s.Data = map[string]string{}
	}
	if s.Stack == nil {
		s.Stack = []session.State{}
	}
	return &s, nil
}

// Save stores s with a TTL, guarded by a compare-and-swap on Version.
// On success the stored and in-memory versions are bumped by one.
func (r *RedisStore) Save(ctx context.Context, s *session.Session, ttl time.Duration) error {
	key := sessionKey(s.UserID)

	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			// First save for this user: only version 0 may create.
			if s.Version != 0 {
				return ErrVersionConflict
			}
		case err != nil:
			return fmt.Errorf("redis get: %w", err)
		default:
			var stored session.Session
			if err := json.Unmarshal(raw, &stored); err == nil && stored.Version != s.Version {
				return ErrVersionConflict
			}
		}

		next := *s
		next.Version = s.Version + 1
		buf, err := json.Marshal(&next)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, buf, ttl)
			return nil
		})
		return err
	}

	for i := 0; i < casRetries; i++ {
		err := r.client.Watch(ctx, txn, key)
		if errors.Is(err, redis.TxFailedErr) {
			// Key changed between WATCH and EXEC; re-read and re-check.
			continue
		}
		if err != nil {
			return err
		}
		s.Version++
		return nil
	}
	return ErrVersionConflict
}

// Delete removes the session for userID. Deleting an absent session is not
// an error.
func (r *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Seen implements Deduper with SETNX on the gateway message id.
func (r *RedisStore) Seen(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	set, err := r.client.SetNX(ctx, dedupeKeyPrefix+id, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return !set, nil
}

// HealthCheck verifies Redis is reachable.
func (r *RedisStore) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
