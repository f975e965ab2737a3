package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Revalidator marks a cached page render stale. Handlers call it after every
// successful mutation; a failed invalidation is logged by the caller, never
// surfaced to the end user.
type Revalidator interface {
	Revalidate(ctx context.Context, path string) error
}

const pageKeyPrefix = "page:"

// RedisRevalidator drops cached renders from Redis. A trailing "*" in the path
// is a wildcard (used for card edits where the owning deck id is not known to
// the handler) and expands via SCAN.
type RedisRevalidator struct {
	client *redis.Client
}

var _ Revalidator = (*RedisRevalidator)(nil)

func NewRedisRevalidator(client *redis.Client) *RedisRevalidator {
	return &RedisRevalidator{client: client}
}

func (r *RedisRevalidator) Revalidate(ctx context.Context, path string) error {
	key := pageKeyPrefix + path

	if !strings.HasSuffix(path, "*") {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("revalidate %s: %w", path, err)
		}
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, key, 100).Result()
		if err != nil {
			return fmt.Errorf("revalidate %s: %w", path, err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("revalidate %s: %w", path, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// NoopRevalidator is used when no Redis address is configured.
type NoopRevalidator struct{}

var _ Revalidator = NoopRevalidator{}

func (NoopRevalidator) Revalidate(ctx context.Context, path string) error {
	return nil
}
