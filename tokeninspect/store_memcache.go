package tokeninspect

import (
	"context"
	"errors"

	"github.com/bradfitz/gomemcache/memcache"
)

type memcacheGetter interface {
	Get(key string) (*memcache.Item, error)
}

// MemcacheStore reads tokens from memcached under prefix+key.
// The memcache client has no context support, so ctx is only checked before
// the lookup.
type MemcacheStore struct {
	client memcacheGetter
	prefix string
}

func NewMemcacheStore(client *memcache.Client, prefix string) *MemcacheStore {
	return &MemcacheStore{client: client, prefix: prefix}
}

func (s *MemcacheStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	item, err := s.client.Get(s.prefix + key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(item.Value), true, nil
}
