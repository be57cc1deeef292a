package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/quick"
	"time"

	"github.com/rs/zerolog"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

// stubStorage is an in-memory SessionStorage with failure injection.
type stubStorage struct {
	mu      sync.Mutex
	data    map[string][]byte
	loadErr error
	saveErr error
	deletes int
}

func newStubStorage() *stubStorage {
	return &stubStorage{data: make(map[string][]byte)}
}

func (s *stubStorage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrSessionNotStored
	}
	return append([]byte(nil), v...), nil
}

func (s *stubStorage) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data[key] = append([]byte(nil), data...)
	return nil
}

func (s *stubStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	delete(s.data, key)
	return nil
}

func (s *stubStorage) Ping(context.Context) error { return nil }

func newStore(storage *stubStorage) *SessionStore {
	return NewSessionStore(storage, DefaultSessionKey, zerolog.Nop())
}

func sampleSession() domain.Session {
	return domain.Session{
		ID:       42,
		Username: "ana",
		Name:     "Ana Vera",
		Email:    "ana@example.com",
		Token:    "tok-42",
		Role:     domain.RoleClient,
		RoleProfile: &domain.RoleProfile{
			ID: 9, Name: "Acme", ManagementID: 3,
		},
		IsFirstLogin: true,
	}
}

func TestSessionStore_StartsLoadingAndAnonymous(t *testing.T) {
	st := newStore(newStubStorage())

	if !st.Loading() {
		t.Fatalf("expected loading before bootstrap")
	}
	if st.IsAuthenticated() || st.Current().ID != 0 {
		t.Fatalf("expected anonymous session before bootstrap")
	}
	select {
	case <-st.Ready():
		t.Fatalf("ready must not be closed before bootstrap")
	default:
	}

	st.Bootstrap(context.Background())

	if st.Loading() {
		t.Fatalf("expected loading cleared after bootstrap")
	}
	select {
	case <-st.Ready():
	default:
		t.Fatalf("expected ready closed after bootstrap")
	}
}

func TestSessionStore_LoginLogoutBootstrapIsAnonymous(t *testing.T) {
	prop := func(id int64, token, name string, first bool) bool {
		storage := newStubStorage()
		st := newStore(storage)
		st.Bootstrap(context.Background())

		st.Login(context.Background(), domain.Session{ID: id, Token: token, Name: name, IsFirstLogin: first})
		st.Logout(context.Background())

		fresh := newStore(storage)
		fresh.Bootstrap(context.Background())
		s := fresh.Current()
		return s.ID == 0 && s.Token == "" && !fresh.IsAuthenticated()
	}
	if err := quick.Check(prop, nil); err != nil {
		t.Fatal(err)
	}
}

func TestSessionStore_RehydrationRoundTrip(t *testing.T) {
	storage := newStubStorage()
	st := newStore(storage)
	st.Bootstrap(context.Background())

	want := sampleSession()
	st.Login(context.Background(), want)

	fresh := newStore(storage)
	fresh.Bootstrap(context.Background())
	got := fresh.Current()

	if got.ID != want.ID || got.Token != want.Token || got.Role != want.Role ||
		got.Name != want.Name || got.Email != want.Email || got.Username != want.Username ||
		got.IsFirstLogin != want.IsFirstLogin {
		t.Fatalf("rehydrated %+v, want %+v", got, want)
	}
	if got.RoleProfile == nil || *got.RoleProfile != *want.RoleProfile {
		t.Fatalf("rehydrated role profile %+v, want %+v", got.RoleProfile, want.RoleProfile)
	}
	if !fresh.IsAuthenticated() || fresh.Token() != "tok-42" {
		t.Fatalf("expected rehydrated session to be authenticated")
	}
}

func TestSessionStore_RehydrationRoundTripProperty(t *testing.T) {
	prop := func(id int64, token, email string) bool {
		if id == 0 {
			return true
		}
		storage := newStubStorage()
		st := newStore(storage)
		st.Login(context.Background(), domain.Session{ID: id, Token: token, Email: email})

		fresh := newStore(storage)
		fresh.Bootstrap(context.Background())
		got := fresh.Current()
		return got.ID == id && got.Token == token && got.Email == email
	}
	if err := quick.Check(prop, nil); err != nil {
		t.Fatal(err)
	}
}

func TestSessionStore_CorruptStorageIsDiscarded(t *testing.T) {
	cases := map[string][]byte{
		"not json":   []byte("{{{"),
		"wrong type": []byte(`"a string"`),
		"zero id":    []byte(`{"id":0,"token":"abc"}`),
		"empty":      []byte(``),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			storage := newStubStorage()
			storage.data[DefaultSessionKey] = raw

			st := newStore(storage)
			st.Bootstrap(context.Background())

			if st.IsAuthenticated() || st.Current().ID != 0 {
				t.Fatalf("expected anonymous session, got %+v", st.Current())
			}
			if _, ok := storage.data[DefaultSessionKey]; ok {
				t.Fatalf("expected corrupt value to be removed")
			}
			if st.Loading() {
				t.Fatalf("expected loading cleared")
			}
		})
	}
}

func TestSessionStore_CorruptSessionErrorIsDiscarded(t *testing.T) {
	storage := newStubStorage()
	storage.loadErr = domain.ErrCorruptSession

	st := newStore(storage)
	st.Bootstrap(context.Background())

	if st.IsAuthenticated() {
		t.Fatalf("expected anonymous session")
	}
	if storage.deletes != 1 {
		t.Fatalf("expected the corrupt value to be deleted once, got %d", storage.deletes)
	}
}

func TestSessionStore_UnreadableStorageStartsAnonymous(t *testing.T) {
	storage := newStubStorage()
	storage.loadErr = errors.New("disk on fire")

	st := newStore(storage)
	st.Bootstrap(context.Background())

	if st.IsAuthenticated() || st.Loading() {
		t.Fatalf("expected resolved anonymous session")
	}
	if storage.deletes != 0 {
		t.Fatalf("a read failure must not delete the stored session")
	}
}

func TestSessionStore_LoginSurvivesPersistFailure(t *testing.T) {
	storage := newStubStorage()
	storage.saveErr = errors.New("quota exceeded")

	st := newStore(storage)
	st.Bootstrap(context.Background())
	st.Login(context.Background(), sampleSession())

	if !st.IsAuthenticated() {
		t.Fatalf("expected in-memory session despite persist failure")
	}
}

func TestSessionStore_BootstrapRunsOnce(t *testing.T) {
	storage := newStubStorage()
	st := newStore(storage)
	st.Bootstrap(context.Background())

	st.Login(context.Background(), sampleSession())
	st.Bootstrap(context.Background())

	if !st.IsAuthenticated() {
		t.Fatalf("a second bootstrap must not reset the session")
	}
}

func TestSessionStore_CurrentReturnsCopy(t *testing.T) {
	st := newStore(newStubStorage())
	st.Login(context.Background(), sampleSession())

	s := st.Current()
	s.RoleProfile.ID = 1000
	s.Token = ""

	if st.Current().RoleProfile.ID != 9 || st.Token() != "tok-42" {
		t.Fatalf("mutating the returned session must not change the store")
	}
}

// gatedStorage blocks Load or Save until the matching release channel is closed.
type gatedStorage struct {
	*stubStorage
	loadEntered, loadRelease chan struct{}
	saveEntered, saveRelease chan struct{}
}

func (g *gatedStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if g.loadRelease != nil {
		close(g.loadEntered)
		<-g.loadRelease
	}
	return g.stubStorage.Load(ctx, key)
}

func (g *gatedStorage) Save(ctx context.Context, key string, data []byte) error {
	if g.saveRelease != nil {
		close(g.saveEntered)
		<-g.saveRelease
		g.saveRelease = nil
	}
	return g.stubStorage.Save(ctx, key, data)
}

func TestSessionStore_LoginDuringBootstrapIsKept(t *testing.T) {
	storage := &gatedStorage{
		stubStorage: newStubStorage(),
		loadEntered: make(chan struct{}),
		loadRelease: make(chan struct{}),
	}
	st := NewSessionStore(storage, DefaultSessionKey, zerolog.Nop())

	go st.Bootstrap(context.Background())
	<-storage.loadEntered

	loggedIn := make(chan struct{})
	go func() {
		st.Login(context.Background(), sampleSession())
		close(loggedIn)
	}()
	// let Login reach the store before rehydration finishes
	time.Sleep(20 * time.Millisecond)
	close(storage.loadRelease)
	<-loggedIn
	<-st.Ready()

	if !st.IsAuthenticated() {
		t.Fatalf("login made while the session was rehydrating was lost")
	}
	if _, err := storage.stubStorage.Load(context.Background(), DefaultSessionKey); err != nil {
		t.Fatalf("expected the session to be persisted, got %v", err)
	}
}

func TestSessionStore_LogoutDuringLoginSaveWins(t *testing.T) {
	storage := &gatedStorage{
		stubStorage: newStubStorage(),
		saveEntered: make(chan struct{}),
		saveRelease: make(chan struct{}),
	}
	st := NewSessionStore(storage, DefaultSessionKey, zerolog.Nop())
	st.Bootstrap(context.Background())

	loggedIn := make(chan struct{})
	go func() {
		st.Login(context.Background(), sampleSession())
		close(loggedIn)
	}()
	<-storage.saveEntered

	loggedOut := make(chan struct{})
	go func() {
		st.Logout(context.Background())
		close(loggedOut)
	}()
	time.Sleep(20 * time.Millisecond)
	close(storage.saveRelease)
	<-loggedIn
	<-loggedOut

	if st.IsAuthenticated() {
		t.Fatalf("expected anonymous after logout")
	}
	fresh := newStore(storage.stubStorage)
	fresh.Bootstrap(context.Background())
	if fresh.IsAuthenticated() {
		t.Fatalf("a logged-out session must not come back on the next bootstrap")
	}
}

func TestSessionStore_LoginCopiesRoleProfile(t *testing.T) {
	st := newStore(newStubStorage())
	s := sampleSession()
	st.Login(context.Background(), s)

	s.RoleProfile.ID = 1000

	if got := st.Current().RoleProfile.ID; got != 9 {
		t.Fatalf("caller mutation leaked into the store: profile id %d", got)
	}
}
