package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/ports"
)

// DefaultSessionKey is the storage key the session is persisted under.
const DefaultSessionKey = "ecotrash:session"

// SessionStore is the single source of truth for who is logged in.
// Only Login, Logout and Bootstrap mutate it.
type SessionStore struct {
	storage ports.SessionStorage
	key     string
	log     zerolog.Logger

	// write serialises Login, Logout and Bootstrap across the memory and
	// storage updates, so the two never disagree.
	write sync.Mutex

	mu      sync.RWMutex
	current domain.Session
	loading bool

	readyOnce sync.Once
	ready     chan struct{}
}

// NewSessionStore returns a store in the loading state holding the anonymous session.
func NewSessionStore(storage ports.SessionStorage, key string, log zerolog.Logger) *SessionStore {
	if key == "" {
		key = DefaultSessionKey
	}
	return &SessionStore{
		storage: storage,
		key:     key,
		log:     log,
		current: domain.Anonymous(),
		loading: true,
		ready:   make(chan struct{}),
	}
}

// Login adopts s as the current session and persists it. Persistence failures
// are logged; the in-memory session is still replaced.
func (st *SessionStore) Login(ctx context.Context, s domain.Session) {
	s = cloneSession(s)

	st.write.Lock()
	defer st.write.Unlock()

	st.mu.Lock()
	st.current = s
	st.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		st.log.Error().Err(err).Msg("encode session")
		return
	}
	if err := st.storage.Save(ctx, st.key, data); err != nil {
		st.log.Warn().Err(err).Str("key", st.key).Msg("persist session failed")
		return
	}
	st.log.Info().Int64("user_id", s.ID).Str("role", string(s.Role)).Msg("session stored")
}

// Logout resets to the anonymous session and removes the persisted copy.
func (st *SessionStore) Logout(ctx context.Context) {
	st.write.Lock()
	defer st.write.Unlock()

	st.mu.Lock()
	st.current = domain.Anonymous()
	st.mu.Unlock()

	if err := st.storage.Delete(ctx, st.key); err != nil {
		st.log.Warn().Err(err).Str("key", st.key).Msg("remove persisted session failed")
	}
}

// Bootstrap rehydrates the persisted session. It never fails: unreadable
// storage means "no session", and corrupt or invalid data is discarded.
// It must be called once; later calls are no-ops.
func (st *SessionStore) Bootstrap(ctx context.Context) {
	st.readyOnce.Do(func() {
		st.write.Lock()
		defer st.write.Unlock()

		s := st.rehydrate(ctx)

		st.mu.Lock()
		st.current = s
		st.loading = false
		st.mu.Unlock()

		close(st.ready)
		st.log.Debug().Bool("authenticated", s.IsAuthenticated()).Msg("session bootstrap complete")
	})
}

func (st *SessionStore) rehydrate(ctx context.Context) domain.Session {
	data, err := st.storage.Load(ctx, st.key)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotStored):
		case errors.Is(err, domain.ErrCorruptSession):
			st.log.Warn().Err(err).Msg("discarding unreadable session")
			st.discard(ctx)
		default:
			st.log.Warn().Err(err).Msg("session storage unavailable, starting anonymous")
		}
		return domain.Anonymous()
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil || !s.Valid() {
		st.log.Warn().Err(err).Msg("discarding corrupt session")
		st.discard(ctx)
		return domain.Anonymous()
	}
	return s
}

func (st *SessionStore) discard(ctx context.Context) {
	if err := st.storage.Delete(ctx, st.key); err != nil {
		st.log.Warn().Err(err).Msg("remove corrupt session failed")
	}
}

// Current returns a copy of the current session.
func (st *SessionStore) Current() domain.Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return cloneSession(st.current)
}

func cloneSession(s domain.Session) domain.Session {
	if s.RoleProfile != nil {
		p := *s.RoleProfile
		s.RoleProfile = &p
	}
	return s
}

// IsAuthenticated is derived from the current session on every call.
func (st *SessionStore) IsAuthenticated() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current.IsAuthenticated()
}

// Loading is true until Bootstrap has resolved.
func (st *SessionStore) Loading() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.loading
}

// Ready is closed once Bootstrap has resolved.
func (st *SessionStore) Ready() <-chan struct{} {
	return st.ready
}

// Token returns the bearer token of the current session, or "".
func (st *SessionStore) Token() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current.Token
}
