package ports

import "context"

// SessionStorage is the durable key/value store holding the serialized session.
// Load returns domain.ErrSessionNotStored when the key is absent.
type SessionStorage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
