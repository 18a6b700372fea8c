package contextstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store using Redis with a per-snapshot TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to Redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// NewRedisStoreWithClient wraps an existing client; used by tests.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) snapshotKey(sessionID string) string {
	return fmt.Sprintf("context:%s", sessionID)
}

// Save stores the snapshot, replacing any previous one and refreshing the TTL.
func (r *RedisStore) Save(ctx context.Context, snapshot *Snapshot) error {
	if snapshot.SessionID == "" {
		return fmt.Errorf("snapshot has no session_id")
	}
	if snapshot.UpdatedAt.IsZero() {
		snapshot.UpdatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, r.snapshotKey(snapshot.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot to Redis: %w", err)
	}
	return nil
}

// Load returns the latest snapshot for a session, or nil when none exists.
func (r *RedisStore) Load(ctx context.Context, sessionID string) (*Snapshot, error) {
	data, err := r.client.Get(ctx, r.snapshotKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot from Redis: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("parse snapshot data: %w", err)
	}
	return &snapshot, nil
}

// Clear removes a session's snapshot.
func (r *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.snapshotKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection is alive.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
