package certificate

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ocdm/pkg/platform/sentinel"
)

const keyPrefix = "ocdm:cert:"

// RedisStore persists server certificates so they survive daemon restarts and
// can be shared by several processes fronting the same key systems.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func certKey(keySystem string) string {
	return keyPrefix + keySystem
}

func (s *RedisStore) Save(ctx context.Context, keySystem string, cert []byte) error {
	if err := s.client.Set(ctx, certKey(keySystem), cert, 0).Err(); err != nil {
		return fmt.Errorf("save certificate for %s: %w", keySystem, errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}

func (s *RedisStore) Find(ctx context.Context, keySystem string) ([]byte, error) {
	cert, err := s.client.Get(ctx, certKey(keySystem)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("certificate for %s: %w", keySystem, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find certificate for %s: %w", keySystem, errors.Join(sentinel.ErrUnavailable, err))
	}
	return cert, nil
}
