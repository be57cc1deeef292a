// Package sealed encrypts the persisted session at rest. It wraps any
// session storage driver; the key is derived from SESSION_SECRET with HKDF
// and records are sealed with NaCl secretbox.
package sealed

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/ports"
)

const (
	keySize   = 32
	nonceSize = 24
	hkdfInfo  = "ecotrash-dashboard session v1"
)

var ErrEmptySecret = errors.New("sealed: secret must not be empty")

type Storage struct {
	next ports.SessionStorage
	key  [keySize]byte
}

// New wraps next so that everything it stores is encrypted with a key
// derived from secret.
func New(next ports.SessionStorage, secret string) (*Storage, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	s := &Storage{next: next}
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(r, s.key[:]); err != nil {
		return nil, fmt.Errorf("sealed: derive key: %w", err)
	}
	return s, nil
}

func (s *Storage) Save(ctx context.Context, key string, data []byte) error {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("sealed: nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], data, &nonce, &s.key)
	enc := make([]byte, base64.StdEncoding.EncodedLen(len(box)))
	base64.StdEncoding.Encode(enc, box)
	return s.next.Save(ctx, key, enc)
}

// Load returns domain.ErrCorruptSession when the stored record cannot be
// decoded or authenticated (tampered, or sealed with another secret).
func (s *Storage) Load(ctx context.Context, key string) ([]byte, error) {
	enc, err := s.next.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	box := make([]byte, base64.StdEncoding.DecodedLen(len(enc)))
	n, err := base64.StdEncoding.Decode(box, enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSession, err)
	}
	box = box[:n]
	if len(box) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("%w: record too short", domain.ErrCorruptSession)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, fmt.Errorf("%w: authentication failed", domain.ErrCorruptSession)
	}
	return plain, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.next.Delete(ctx, key)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}
