package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rafaelleal24/cart/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type snapshotDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// SnapshotStore keeps one document per key, replaced on every Set.
type SnapshotStore struct {
	collection *mongo.Collection
}

func NewSnapshotStore(db *mongo.Database, collectionName string) port.SnapshotPort {
	return &SnapshotStore{collection: db.Collection(collectionName)}
}

func (s *SnapshotStore) Get(ctx context.Context, key string) (string, bool, error) {
	var doc snapshotDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo find snapshot: %w", err)
	}
	return doc.Value, true, nil
}

func (s *SnapshotStore) Set(ctx context.Context, key string, value string) error {
	doc := snapshotDocument{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace snapshot: %w", err)
	}
	return nil
}
