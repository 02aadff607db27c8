package memory

import (
	"context"
	"sync"
	"time"

	"meridian/contexts/governance/audit-service/domain/entities"
	"meridian/contexts/governance/audit-service/ports"

	"github.com/google/uuid"
)

// Store is an append-only in-memory audit log for tests and local wiring.
type Store struct {
	mu      sync.RWMutex
	entries []entities.AuditEntry
}

func NewStore() *Store {
	return &Store{entries: make([]entities.AuditEntry, 0)}
}

func (s *Store) AppendEntry(_ context.Context, entry entities.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *Store) ListEntries(_ context.Context, filter ports.EntryFilter) ([]entities.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.AuditEntry, 0)
	for i := len(s.entries) - 1; i >= 0; i-- {
		entry := s.entries[i]
		if filter.ActorID != "" && entry.ActorID != filter.ActorID {
			continue
		}
		if filter.ResourceType != "" && entry.ResourceType != filter.ResourceType {
			continue
		}
		if filter.ResourceID != "" && entry.ResourceID != filter.ResourceID {
			continue
		}
		items = append(items, entry)
		if filter.Limit > 0 && len(items) >= filter.Limit {
			break
		}
	}
	return items, nil
}

// Now implements ports.Clock.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// NewID implements ports.IDGenerator.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
