package queries

import (
	"context"
	"time"

	"meridian/contexts/access-control/delegation-service/domain/entities"
	"meridian/contexts/access-control/delegation-service/domain/services"
	"meridian/contexts/access-control/delegation-service/ports"
)

// EffectiveCapabilitiesQuery evaluates one grant. With AssetID set, the
// result is the grant's capabilities over that (asset, type) point; without
// it, the intersection across every asset in a specific scope.
type EffectiveCapabilitiesQuery struct {
	GrantID string
	AssetID string
	TypeTag string
}

// EffectiveCapabilitiesUseCase intersects a grant's flags with the grantor's
// own current holdings over the same scope, so a grantor can never delegate a
// capability it does not hold. Evaluation is lazy: nothing is materialized.
type EffectiveCapabilitiesUseCase struct {
	Repository    ports.Repository
	Directory     ports.AssetDirectory
	Subscriptions ports.SubscriptionReader
	Clock         ports.Clock
}

func (u EffectiveCapabilitiesUseCase) Execute(ctx context.Context, query EffectiveCapabilitiesQuery) (entities.Capabilities, error) {
	grant, err := u.Repository.GetGrant(ctx, query.GrantID)
	if err != nil {
		return entities.Capabilities{}, err
	}
	now := u.now()
	if !grant.IsLive(now) {
		return entities.Capabilities{}, nil
	}

	source := u.holdingsSource(ctx, now)

	if query.AssetID != "" {
		if !grant.AssetScope.Contains(query.AssetID) {
			return entities.Capabilities{}, nil
		}
		if query.TypeTag != "" && !grant.TypeScope.Contains(query.TypeTag) {
			return entities.Capabilities{}, nil
		}
		holdings, err := services.OrganizationHoldings(source, grant.GrantorID, query.AssetID, query.TypeTag)
		if err != nil {
			return entities.Capabilities{}, err
		}
		return grant.Capabilities.Intersect(holdings), nil
	}

	assetIDs := grant.AssetScope.IDs()
	if grant.AssetScope.IsAll() || len(assetIDs) == 0 {
		return grant.Capabilities, nil
	}
	caps := entities.FullCapabilities()
	for _, assetID := range assetIDs {
		holdings, err := services.OrganizationHoldings(source, grant.GrantorID, assetID, "")
		if err != nil {
			return entities.Capabilities{}, err
		}
		caps = caps.Intersect(holdings)
	}
	return grant.Capabilities.Intersect(caps), nil
}

func (u EffectiveCapabilitiesUseCase) holdingsSource(ctx context.Context, now time.Time) services.HoldingsSource {
	return services.HoldingsSource{
		ManagerOf: func(assetID string) (string, bool, error) {
			asset, found, err := u.Directory.GetAsset(ctx, assetID)
			if err != nil || !found {
				return "", false, err
			}
			return asset.ManagerID, true, nil
		},
		HasActiveSubscription: func(orgID string, assetID string) (bool, error) {
			return u.Subscriptions.HasActiveSubscription(ctx, orgID, assetID)
		},
		LiveGrantsFor: func(orgID string) ([]entities.AccessGrant, error) {
			grants, err := u.Repository.GrantsFor(ctx, orgID)
			if err != nil {
				return nil, err
			}
			live := make([]entities.AccessGrant, 0, len(grants))
			for _, grant := range grants {
				if grant.IsLive(now) {
					live = append(live, grant)
				}
			}
			return live, nil
		},
	}
}

func (u EffectiveCapabilitiesUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
