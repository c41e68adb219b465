package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// runTTL bounds how long finished run records are queryable.
const runTTL = 24 * time.Hour

type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a redis-backed run store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "run:",
	}
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) Put(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("jobs: missing run id")
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("jobs: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(run.ID), data, runTTL).Err()
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Run, error) {
	val, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	var run Run
	if err := json.Unmarshal([]byte(val), &run); err != nil {
		return nil, fmt.Errorf("jobs: failed to unmarshal: %w", err)
	}

	return &run, nil
}
