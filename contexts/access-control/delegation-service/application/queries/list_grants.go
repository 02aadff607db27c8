package queries

import (
	"context"
	"strings"
	"time"

	"meridian/contexts/access-control/delegation-service/domain/entities"
	domainerrors "meridian/contexts/access-control/delegation-service/domain/errors"
	"meridian/contexts/access-control/delegation-service/ports"
)

// ListGrantsQuery selects grants by grantee or grantor.
type ListGrantsQuery struct {
	GranteeID string
	GrantorID string
	LiveOnly  bool
}

// ListGrantsUseCase lists grants with the derived effective status: an active
// grant past its expiry reads as Expired without any stored mutation.
type ListGrantsUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
}

func (u ListGrantsUseCase) Execute(ctx context.Context, query ListGrantsQuery) ([]entities.AccessGrant, error) {
	var (
		items []entities.AccessGrant
		err   error
	)
	switch {
	case strings.TrimSpace(query.GranteeID) != "":
		items, err = u.Repository.GrantsFor(ctx, query.GranteeID)
	case strings.TrimSpace(query.GrantorID) != "":
		items, err = u.Repository.GrantsBy(ctx, query.GrantorID)
	default:
		return nil, domainerrors.ErrInvalidGranteeID
	}
	if err != nil {
		return nil, err
	}

	now := u.now()
	results := make([]entities.AccessGrant, 0, len(items))
	for _, grant := range items {
		if query.LiveOnly && !grant.IsLive(now) {
			continue
		}
		grant.Status = grant.EffectiveStatus(now)
		results = append(results, grant)
	}
	return results, nil
}

func (u ListGrantsUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
