package jobs

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps runs in process memory. Used when redis is not
// configured; records do not survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]Run
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: map[string]Run{}}
}

func (m *MemoryStore) Put(_ context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("jobs: missing run id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = run
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, nil
	}
	return &run, nil
}
