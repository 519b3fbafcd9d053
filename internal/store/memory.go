package store

import (
	"context"
	"sync"
	"time"

	"github.com/scopelock/leadflow/internal/model"
)

// MemoryStore keeps approvals and leads in process memory. Entries are lost
// on restart; that matches the original intake service and is the default.
type MemoryStore struct {
	mu        sync.RWMutex
	approvals map[string]model.PendingApproval
	leads     []model.LeadRecord
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		approvals: make(map[string]model.PendingApproval),
	}
}

func (s *MemoryStore) PutApproval(_ context.Context, pa model.PendingApproval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.approvals[pa.JobID] = pa
	return nil
}

func (s *MemoryStore) GetApproval(_ context.Context, jobID string) (*model.PendingApproval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pa, ok := s.approvals[jobID]
	if !ok {
		return nil, ErrNotFound
	}
	return &pa, nil
}

func (s *MemoryStore) MarkApproved(_ context.Context, jobID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pa, ok := s.approvals[jobID]
	if !ok {
		return ErrNotFound
	}
	pa.ApprovedAt = &at
	s.approvals[jobID] = pa
	return nil
}

func (s *MemoryStore) DeleteApproval(_ context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.approvals, jobID)
	return nil
}

func (s *MemoryStore) ApprovalCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.approvals), nil
}

func (s *MemoryStore) PurgeExpired(_ context.Context, ttl time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-ttl)
	purged := 0
	for id, pa := range s.approvals {
		if pa.CreatedAt.Before(cutoff) {
			delete(s.approvals, id)
			purged++
		}
	}
	return purged, nil
}

func (s *MemoryStore) InsertLead(_ context.Context, rec model.LeadRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append(s.leads, rec)
	return nil
}

func (s *MemoryStore) ListLeads(_ context.Context, filter LeadFilter) ([]model.LeadRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.LeadRecord, 0, len(s.leads))
	// Newest first.
	for i := len(s.leads) - 1; i >= 0; i-- {
		rec := s.leads[i]
		if filter.Decision != "" && rec.Decision != filter.Decision {
			continue
		}
		out = append(out, rec)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) Migrate(_ context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
