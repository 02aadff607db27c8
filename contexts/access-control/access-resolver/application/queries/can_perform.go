package queries

import (
	"context"
	"log/slog"
	"time"

	application "meridian/contexts/access-control/access-resolver/application"
	"meridian/contexts/access-control/access-resolver/domain/entities"
	"meridian/contexts/access-control/access-resolver/ports"
	grantentities "meridian/contexts/access-control/delegation-service/domain/entities"
	grantservices "meridian/contexts/access-control/delegation-service/domain/services"
)

// CanPerformQuery asks whether an organization may perform one action on one
// asset, optionally narrowed to a packet type tag.
type CanPerformQuery struct {
	ActorID string
	AssetID string
	TypeTag string
	Action  entities.Action
}

// CanPerformUseCase is the single enforcement point for data access. The
// check is total: absence of access yields a denial with a reason, never an
// error. Resolution order is admin, manager, subscription, then the
// delegation walk; the first relationship that covers the action wins.
type CanPerformUseCase struct {
	Grants        ports.GrantReader
	Directory     ports.AssetDirectory
	Subscriptions ports.SubscriptionReader
	Admin         ports.AdminChecker
	Clock         ports.Clock
	Logger        *slog.Logger
}

func (u CanPerformUseCase) Execute(ctx context.Context, query CanPerformQuery) (entities.Decision, error) {
	logger := application.ResolveLogger(u.Logger)
	now := u.now()

	if !query.Action.IsValid() {
		return deny(entities.ReasonUnknownAction, now), nil
	}

	if u.Admin != nil {
		admin, err := u.Admin.IsAdmin(ctx, query.ActorID)
		if err != nil {
			return entities.Decision{}, err
		}
		if admin {
			return allow(entities.ReasonPlatformAdmin, now), nil
		}
	}

	asset, found, err := u.Directory.GetAsset(ctx, query.AssetID)
	if err != nil {
		return entities.Decision{}, err
	}
	if !found {
		return deny(entities.ReasonAssetNotFound, now), nil
	}
	if asset.ManagerID == query.ActorID {
		return allow(entities.ReasonAssetManager, now), nil
	}

	if query.Action == entities.ActionViewData {
		subscribed, err := u.Subscriptions.HasActiveSubscription(ctx, query.ActorID, query.AssetID)
		if err != nil {
			return entities.Decision{}, err
		}
		if subscribed {
			return allow(entities.ReasonActiveSubscription, now), nil
		}
	}

	holdings, err := grantservices.OrganizationHoldings(u.holdingsSource(ctx, now), query.ActorID, query.AssetID, query.TypeTag)
	if err != nil {
		return entities.Decision{}, err
	}
	if actionCovered(query.Action, holdings) {
		return allow(entities.ReasonDelegatedGrant, now), nil
	}

	logger.Debug("access denied",
		"event", "access_denied",
		"module", "access-control/access-resolver",
		"layer", "application",
		"actor_id", query.ActorID,
		"asset_id", query.AssetID,
		"action", string(query.Action),
	)
	return deny(entities.ReasonNoRelationship, now), nil
}

func (u CanPerformUseCase) holdingsSource(ctx context.Context, now time.Time) grantservices.HoldingsSource {
	liveGrants := newLiveGrantCache(u.Grants, now)
	return grantservices.HoldingsSource{
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
		LiveGrantsFor: func(orgID string) ([]grantentities.AccessGrant, error) {
			return liveGrants(ctx, orgID)
		},
	}
}

func (u CanPerformUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func allow(reason string, now time.Time) entities.Decision {
	return entities.Decision{Allowed: true, Reason: reason, CheckedAt: now}
}

func deny(reason string, now time.Time) entities.Decision {
	return entities.Decision{Allowed: false, Reason: reason, CheckedAt: now}
}

func actionCovered(action entities.Action, capabilities grantentities.Capabilities) bool {
	switch action {
	case entities.ActionPublish:
		return capabilities.CanPublish
	case entities.ActionViewData:
		return capabilities.CanViewData
	case entities.ActionManageSubscriptions:
		return capabilities.CanManageSubscriptions
	case entities.ActionApproveDelegations:
		return capabilities.CanApproveDelegations
	}
	return false
}

// newLiveGrantCache memoizes per-organization live-grant lookups for the
// duration of one check, so the walk never refetches the same grantee twice.
func newLiveGrantCache(reader ports.GrantReader, now time.Time) func(context.Context, string) ([]grantentities.AccessGrant, error) {
	cache := make(map[string][]grantentities.AccessGrant)
	return func(ctx context.Context, orgID string) ([]grantentities.AccessGrant, error) {
		if cached, ok := cache[orgID]; ok {
			return cached, nil
		}
		grants, err := reader.GrantsFor(ctx, orgID)
		if err != nil {
			return nil, err
		}
		live := make([]grantentities.AccessGrant, 0, len(grants))
		for _, grant := range grants {
			if grant.IsLive(now) {
				live = append(live, grant)
			}
		}
		cache[orgID] = live
		return live, nil
	}
}
