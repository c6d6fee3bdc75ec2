package repository

import (
	"context"
	"sync"

	domainKabang "github.com/kabang/kabang/domains/kabang"
)

// MemorySnapshotStore is used when Valkey is disabled. It only helps across
// a reconnect within the same process, never across restarts.
type MemorySnapshotStore struct {
	mu      sync.RWMutex
	kabangs []domainKabang.Kabang
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

func (s *MemorySnapshotStore) Save(_ context.Context, kabangs []domainKabang.Kabang) error {
	snapshot := make([]domainKabang.Kabang, len(kabangs))
	copy(snapshot, kabangs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.kabangs = snapshot
	return nil
}

func (s *MemorySnapshotStore) Load(_ context.Context) ([]domainKabang.Kabang, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.kabangs == nil {
		return nil, nil
	}
	snapshot := make([]domainKabang.Kabang, len(s.kabangs))
	copy(snapshot, s.kabangs)
	return snapshot, nil
}
