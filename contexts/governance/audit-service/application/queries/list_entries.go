package queries

import (
	"context"

	"meridian/contexts/governance/audit-service/domain/entities"
	"meridian/contexts/governance/audit-service/ports"
)

// ListEntriesQuery narrows the audit listing.
type ListEntriesQuery struct {
	ActorID      string
	ResourceType string
	ResourceID   string
	Limit        int
}

// ListEntriesUseCase lists audit entries newest first.
type ListEntriesUseCase struct {
	Repository ports.Repository
}

func (u ListEntriesUseCase) Execute(ctx context.Context, query ListEntriesQuery) ([]entities.AuditEntry, error) {
	limit := query.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return u.Repository.ListEntries(ctx, ports.EntryFilter{
		ActorID:      query.ActorID,
		ResourceType: query.ResourceType,
		ResourceID:   query.ResourceID,
		Limit:        limit,
	})
}
