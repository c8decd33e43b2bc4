package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DedupStore implements ports.CallbackDedup using Redis SET NX. The provider
// redelivers callbacks; the first receiver of a key wins, everyone else sees
// a duplicate.
type DedupStore struct {
	client *goredis.Client
	prefix string
}

// NewDedupStore creates a new Redis-backed callback dedup store.
func NewDedupStore(client *goredis.Client) *DedupStore {
	return &DedupStore{
		client: client,
		prefix: "callback:",
	}
}

// CheckAndSet atomically records key, returning true if it was unseen.
func (s *DedupStore) CheckAndSet(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	result, err := s.client.SetArgs(ctx, s.prefix+key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists — callback was already processed
			return false, nil
		}
		return false, fmt.Errorf("redis callback dedup: %w", err)
	}
	return result == "OK", nil
}
