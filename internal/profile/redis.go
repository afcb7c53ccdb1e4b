package profile

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the hash holding server-stored profiles.
const DefaultRedisKey = "paneboard:profiles"

// RedisStore keeps profiles as fields of a single redis hash, so several
// machines can share one set of boards.
type RedisStore struct {
	client *redis.Client
	key    string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore uses client and the hash at key (DefaultRedisKey when empty).
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context, name string) (string, error) {
	n, err := validName(name)
	if err != nil {
		return "", err
	}
	v, err := s.client.HGet(ctx, s.key, n).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, n)
	}
	if err != nil {
		return "", fmt.Errorf("load profile %s: %w", n, err)
	}
	return v, nil
}

func (s *RedisStore) Save(ctx context.Context, name, descriptor string) error {
	n, err := validName(name)
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, s.key, n, descriptor).Err(); err != nil {
		return fmt.Errorf("save profile %s: %w", n, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	names, err := s.client.HKeys(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	n, err := validName(name)
	if err != nil {
		return err
	}
	removed, err := s.client.HDel(ctx, s.key, n).Result()
	if err != nil {
		return fmt.Errorf("delete profile %s: %w", n, err)
	}
	if removed == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, n)
	}
	return nil
}
