package ports

import (
	"context"
	"time"

	"meridian/contexts/governance/audit-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for audit rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EntryFilter narrows audit listings.
type EntryFilter struct {
	ActorID      string
	ResourceType string
	ResourceID   string
	Limit        int
}

// Repository is the append-only audit store boundary.
type Repository interface {
	AppendEntry(ctx context.Context, entry entities.AuditEntry) error
	ListEntries(ctx context.Context, filter EntryFilter) ([]entities.AuditEntry, error)
}
