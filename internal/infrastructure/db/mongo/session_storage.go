package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

const sessionCollection = "dashboard_sessions"

// SessionStorage keeps one document per session key.
type SessionStorage struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewSessionStorage(db *mongo.Database) *SessionStorage {
	return &SessionStorage{db: db, coll: db.Collection(sessionCollection)}
}

type sessionDoc struct {
	Key       string `bson:"_id"`
	Payload   []byte `bson:"payload"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (s *SessionStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrSessionNotStored
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return doc.Payload, nil
}

func (s *SessionStorage) Save(ctx context.Context, key string, data []byte) error {
	doc := sessionDoc{Key: key, Payload: data, UpdatedAt: time.Now().UTC().Unix()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Ping(ctx context.Context) error {
	return s.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
