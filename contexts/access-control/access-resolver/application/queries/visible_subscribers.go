package queries

import (
	"context"

	"meridian/contexts/access-control/access-resolver/domain/entities"
	"meridian/contexts/access-control/access-resolver/ports"
	grantservices "meridian/contexts/access-control/delegation-service/domain/services"
)

// VisibleSubscribersQuery asks which subscriber identities of an asset the
// actor may see.
type VisibleSubscribersQuery struct {
	ActorID string
	AssetID string
}

// VisibleSubscribersUseCase scopes subscriber visibility: the manager and any
// grantee delegated subscription management or data view sees the full list,
// a plain subscriber sees only itself, anyone else sees nothing. This is a
// confidentiality rule, not an error path, so an empty result carries a nil
// error.
type VisibleSubscribersUseCase struct {
	CanPerform    CanPerformUseCase
	Subscriptions ports.SubscriptionReader
}

func (u VisibleSubscribersUseCase) Execute(ctx context.Context, query VisibleSubscribersQuery) ([]string, error) {
	manage, err := u.CanPerform.Execute(ctx, CanPerformQuery{
		ActorID: query.ActorID,
		AssetID: query.AssetID,
		Action:  entities.ActionManageSubscriptions,
	})
	if err != nil {
		return nil, err
	}
	if manage.Allowed {
		return u.Subscriptions.ListSubscriberIDs(ctx, query.AssetID)
	}

	view, err := u.CanPerform.Execute(ctx, CanPerformQuery{
		ActorID: query.ActorID,
		AssetID: query.AssetID,
		Action:  entities.ActionViewData,
	})
	if err != nil {
		return nil, err
	}
	if !view.Allowed {
		return []string{}, nil
	}
	// A subscription-derived view confers self-visibility only. The actor may
	// still hold a delegated view grant alongside the subscription, and the
	// grant wins, so the grant walk is consulted before the self-only fallback.
	if view.Reason == entities.ReasonActiveSubscription {
		delegated, err := u.delegatedView(ctx, query.ActorID, query.AssetID)
		if err != nil {
			return nil, err
		}
		if !delegated {
			return []string{query.ActorID}, nil
		}
	}
	return u.Subscriptions.ListSubscriberIDs(ctx, query.AssetID)
}

// delegatedView reports whether the actor holds view over the asset through
// grants alone. The actor's own subscription is masked so a subscription-only
// viewer does not read as a grantee; upstream grantors keep theirs.
func (u VisibleSubscribersUseCase) delegatedView(ctx context.Context, actorID string, assetID string) (bool, error) {
	src := u.CanPerform.holdingsSource(ctx, u.CanPerform.now())
	direct := src.HasActiveSubscription
	src.HasActiveSubscription = func(orgID string, subjectAssetID string) (bool, error) {
		if orgID == actorID {
			return false, nil
		}
		return direct(orgID, subjectAssetID)
	}
	holdings, err := grantservices.OrganizationHoldings(src, actorID, assetID, "")
	if err != nil {
		return false, err
	}
	return holdings.CanViewData, nil
}
