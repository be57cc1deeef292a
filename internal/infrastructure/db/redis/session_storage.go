package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

// SessionStorage keeps the serialized session in a Redis string.
// A zero TTL keeps the key until logout.
type SessionStorage struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewSessionStorage(client redis.Cmdable, ttl time.Duration) *SessionStorage {
	return &SessionStorage{client: client, ttl: ttl}
}

func (s *SessionStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotStored
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	return data, nil
}

func (s *SessionStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
