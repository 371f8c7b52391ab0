package memory

import (
	"context"
	"sync"

	"github.com/rafaelleal24/cart/internal/core/port"
)

// SnapshotStore keeps snapshots in process memory. It does not survive a
// restart and exists for local runs and tests.
type SnapshotStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{values: make(map[string]string)}
}

var _ port.SnapshotPort = (*SnapshotStore)(nil)

func (s *SnapshotStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *SnapshotStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
