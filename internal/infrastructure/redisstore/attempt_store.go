package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Lua script: atomic INCR, set PEXPIRE only on the increment that creates
// the key. Guarantees no counter without a TTL even under concurrent
// failures for the same identifier.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// AttemptStore is the Redis-backed key-value store used by the login
// attempt guard.
type AttemptStore struct {
	rdb *redis.Client
}

func NewAttemptStore(rdb *redis.Client) *AttemptStore {
	return &AttemptStore{rdb: rdb}
}

// Incr atomically increments key, setting ttl only when the increment
// created the key. Returns the new value.
func (s *AttemptStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	res, err := incrExpireScript.Run(ctx, s.rdb, []string{key}, ttl.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	n, _ := res.(int64)
	return n, nil
}

func (s *AttemptStore) SetFlag(ctx context.Context, key string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, "locked", ttl).Err()
}

func (s *AttemptStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	return n > 0, err
}

func (s *AttemptStore) Delete(ctx context.Context, keys ...string) error {
	return s.rdb.Del(ctx, keys...).Err()
}

// Get returns the counter value at key, or 0 when the key is absent.
func (s *AttemptStore) Get(ctx context.Context, key string) (int64, error) {
	n, err := s.rdb.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
