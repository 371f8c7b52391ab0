package redis

import (
	"context"
	"fmt"

	"github.com/rafaelleal24/cart/internal/core/port"
)

// SnapshotStore keeps each snapshot as a plain string value with no expiry.
type SnapshotStore struct {
	client *Client
	prefix string
}

func NewSnapshotStore(client *Client, prefix string) port.SnapshotPort {
	return &SnapshotStore{client: client, prefix: prefix}
}

func (s *SnapshotStore) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (s *SnapshotStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, found, err := s.client.Get(ctx, s.key(key))
	if err != nil {
		return "", false, fmt.Errorf("redis get snapshot: %w", err)
	}
	return value, found, nil
}

func (s *SnapshotStore) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}
