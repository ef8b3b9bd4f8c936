package tokeninspect

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// redisGetter is the subset of redis.Cmdable used by RedisStore.
type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore reads tokens stored as plain Redis strings under prefix+key.
type RedisStore struct {
	client redisGetter
	prefix string
}

// NewRedisStore wraps any go-redis client (*redis.Client, *redis.ClusterClient,
// redis.UniversalClient).
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
