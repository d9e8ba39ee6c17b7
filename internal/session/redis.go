package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "jobdesk:session:"

// RedisStore keeps sessions in Redis so any API instance can serve them.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

func NewRedisStore(client *redis.Client, ttl, lockTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, lockTTL: lockTTL}
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, keyPrefix+s.ID, data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	if !ok {
		return fmt.Errorf("creating session: id %s already taken", s.ID)
	}
	return nil
}

// Get reads a session and restarts its TTL.
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.GetEx(ctx, keyPrefix+id, r.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}
	return decode(data)
}

// Save replaces a live session. An expired session is not recreated.
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	ok, err := r.client.SetXX(ctx, keyPrefix+s.ID, data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (r *RedisStore) Acquire(ctx context.Context, id, action string) (func(), error) {
	key := keyPrefix + lockKey(id, action)
	ok, err := r.client.SetNX(ctx, key, 1, r.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquiring %s lock: %w", action, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrActionInFlight, action)
	}
	return func() {
		// The request context may already be cancelled.
		if err := r.client.Del(context.Background(), key).Err(); err != nil {
			slog.Warn("Failed to release session lock", "error", err, "session", id, "action", action)
		}
	}, nil
}
