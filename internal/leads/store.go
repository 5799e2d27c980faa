package leads

import (
	"context"
	"sync"
)

// Store persists leads.
type Store interface {
	Save(ctx context.Context, lead Lead) error
	// Recent returns up to limit leads, newest first.
	Recent(ctx context.Context, limit int) ([]Lead, error)
}

// MemoryStore keeps the newest leads in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	max   int
	leads []Lead
}

// NewMemoryStore keeps at most max leads; max <= 0 means 1000.
func NewMemoryStore(max int) *MemoryStore {
	if max <= 0 {
		max = 1000
	}
	return &MemoryStore{max: max}
}

func (s *MemoryStore) Save(_ context.Context, lead Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append(s.leads, lead)
	if over := len(s.leads) - s.max; over > 0 {
		s.leads = append([]Lead(nil), s.leads[over:]...)
	}
	return nil
}

func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.leads) {
		limit = len(s.leads)
	}
	out := make([]Lead, 0, limit)
	for i := len(s.leads) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.leads[i])
	}
	return out, nil
}
