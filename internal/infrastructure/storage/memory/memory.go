// Package memory is an in-process session storage, used by tests and by
// SESSION_DRIVER=memory for throwaway runs.
package memory

import (
	"context"
	"sync"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

type Storage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func New() *Storage {
	return &Storage{data: make(map[string][]byte)}
}

func (s *Storage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrSessionNotStored
	}
	return append([]byte(nil), v...), nil
}

func (s *Storage) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), data...)
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *Storage) Ping(context.Context) error { return nil }
