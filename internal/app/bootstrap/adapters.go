package bootstrap

import (
	"context"
	"errors"

	resolverqueries "meridian/contexts/access-control/access-resolver/application/queries"
	resolverentities "meridian/contexts/access-control/access-resolver/domain/entities"
	resolverports "meridian/contexts/access-control/access-resolver/ports"
	delegationports "meridian/contexts/access-control/delegation-service/ports"
	rolequeries "meridian/contexts/access-control/role-registry/application/queries"
	roleservices "meridian/contexts/access-control/role-registry/domain/services"
	ledgerports "meridian/contexts/data-distribution/provenance-ledger/ports"
	directoryerrors "meridian/contexts/fund-network/directory-service/domain/errors"
	directoryports "meridian/contexts/fund-network/directory-service/ports"
	subscriptionentities "meridian/contexts/fund-network/subscription-service/domain/entities"
	subscriptionports "meridian/contexts/fund-network/subscription-service/ports"
	contractsv1 "meridian/contracts/gen/events/v1"
	"meridian/internal/platform/messaging"
)

// Cross-module adapters live here so each context keeps declaring only the
// narrow port it consumes. The directory stays the single source of truth for
// organizations and assets; every other module sees a projection of it.

// grantDirectory projects the directory onto the delegation-service port.
type grantDirectory struct {
	directory directoryports.Directory
}

func (a grantDirectory) GetAsset(ctx context.Context, assetID string) (delegationports.AssetInfo, bool, error) {
	asset, err := a.directory.GetAsset(ctx, assetID)
	if errors.Is(err, directoryerrors.ErrAssetNotFound) {
		return delegationports.AssetInfo{}, false, nil
	}
	if err != nil {
		return delegationports.AssetInfo{}, false, err
	}
	return delegationports.AssetInfo{
		AssetID:         asset.AssetID,
		ManagerID:       asset.ManagerID,
		RequireApproval: asset.RequireManagerApprovalForDelegations,
		IsActive:        asset.IsActive,
	}, true, nil
}

func (a grantDirectory) ListAssetIDsManagedBy(ctx context.Context, organizationID string) ([]string, error) {
	assets, err := a.directory.ListAssetsManagedBy(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(assets))
	for _, asset := range assets {
		ids = append(ids, asset.AssetID)
	}
	return ids, nil
}

// subscriptionDirectory projects the directory onto the subscription-service
// port.
type subscriptionDirectory struct {
	directory directoryports.Directory
}

func (a subscriptionDirectory) GetAsset(ctx context.Context, assetID string) (subscriptionports.AssetInfo, bool, error) {
	asset, err := a.directory.GetAsset(ctx, assetID)
	if errors.Is(err, directoryerrors.ErrAssetNotFound) {
		return subscriptionports.AssetInfo{}, false, nil
	}
	if err != nil {
		return subscriptionports.AssetInfo{}, false, err
	}
	return subscriptionports.AssetInfo{
		AssetID:   asset.AssetID,
		ManagerID: asset.ManagerID,
		IsActive:  asset.IsActive,
	}, true, nil
}

// resolverDirectory projects the directory onto the access-resolver port.
type resolverDirectory struct {
	directory directoryports.Directory
}

func (a resolverDirectory) GetAsset(ctx context.Context, assetID string) (resolverports.AssetInfo, bool, error) {
	asset, err := a.directory.GetAsset(ctx, assetID)
	if errors.Is(err, directoryerrors.ErrAssetNotFound) {
		return resolverports.AssetInfo{}, false, nil
	}
	if err != nil {
		return resolverports.AssetInfo{}, false, err
	}
	return resolverports.AssetInfo{
		AssetID:   asset.AssetID,
		ManagerID: asset.ManagerID,
		IsActive:  asset.IsActive,
	}, true, nil
}

// grantSubscriptions derives the subscription facts the delegation walk needs
// from the subscription repository.
type grantSubscriptions struct {
	repository subscriptionports.Repository
}

func (a grantSubscriptions) HasActiveSubscription(ctx context.Context, organizationID string, assetID string) (bool, error) {
	sub, found, err := a.repository.FindByAssetAndSubscriber(ctx, assetID, organizationID)
	if err != nil {
		return false, err
	}
	return found && sub.Status == subscriptionentities.SubscriptionActive, nil
}

func (a grantSubscriptions) ListActiveSubscriptionAssetIDs(ctx context.Context, organizationID string) ([]string, error) {
	subs, err := a.repository.ListBySubscriber(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		if sub.Status == subscriptionentities.SubscriptionActive {
			ids = append(ids, sub.AssetID)
		}
	}
	return ids, nil
}

// resolverSubscriptions derives the subscription facts access checks need.
type resolverSubscriptions struct {
	repository subscriptionports.Repository
}

func (a resolverSubscriptions) HasActiveSubscription(ctx context.Context, organizationID string, assetID string) (bool, error) {
	sub, found, err := a.repository.FindByAssetAndSubscriber(ctx, assetID, organizationID)
	if err != nil {
		return false, err
	}
	return found && sub.Status == subscriptionentities.SubscriptionActive, nil
}

func (a resolverSubscriptions) ListSubscriberIDs(ctx context.Context, assetID string) ([]string, error) {
	subs, err := a.repository.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		if sub.Status == subscriptionentities.SubscriptionActive {
			ids = append(ids, sub.SubscriberID)
		}
	}
	return ids, nil
}

// roleAdminChecker resolves an organization's role baseline through the role
// registry. Deactivated and unknown organizations are never admins.
type roleAdminChecker struct {
	directory   directoryports.Directory
	permissions rolequeries.PermissionsForUseCase
}

func (a roleAdminChecker) IsAdmin(ctx context.Context, organizationID string) (bool, error) {
	org, err := a.directory.GetOrganization(ctx, organizationID)
	if errors.Is(err, directoryerrors.ErrOrganizationNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !org.IsActive {
		return false, nil
	}
	permissions, err := a.permissions.Execute(ctx, string(org.Kind))
	if err != nil {
		return false, err
	}
	return roleservices.IsAdmin(permissions), nil
}

// resolverAuthorizer hands ledger capability checks to the access resolver.
type resolverAuthorizer struct {
	check resolverqueries.CanPerformUseCase
}

func (a resolverAuthorizer) CanPublish(ctx context.Context, actorID string, assetID string, typeTag string) (ledgerports.AccessDecision, error) {
	return a.decide(ctx, actorID, assetID, typeTag, resolverentities.ActionPublish)
}

func (a resolverAuthorizer) CanViewData(ctx context.Context, actorID string, assetID string, typeTag string) (ledgerports.AccessDecision, error) {
	return a.decide(ctx, actorID, assetID, typeTag, resolverentities.ActionViewData)
}

func (a resolverAuthorizer) decide(
	ctx context.Context,
	actorID string,
	assetID string,
	typeTag string,
	action resolverentities.Action,
) (ledgerports.AccessDecision, error) {
	decision, err := a.check.Execute(ctx, resolverqueries.CanPerformQuery{
		ActorID: actorID,
		AssetID: assetID,
		TypeTag: typeTag,
		Action:  action,
	})
	if err != nil {
		return ledgerports.AccessDecision{}, err
	}
	return ledgerports.AccessDecision{
		Allowed: decision.Allowed,
		Reason:  decision.Reason,
	}, nil
}

// grantBusPublisher binds the delegation outbox relay to the event bus.
type grantBusPublisher struct {
	bus *messaging.Kafka
}

func (p grantBusPublisher) PublishGrantChanged(ctx context.Context, event delegationports.GrantChangedEvent) error {
	return p.bus.Publish(ctx, contractsv1.EventGrantsChanged, event)
}

// packetBusPublisher binds the ledger outbox relay to the event bus.
type packetBusPublisher struct {
	bus *messaging.Kafka
}

func (p packetBusPublisher) PublishPacketEvent(ctx context.Context, event ledgerports.PacketPublishedEvent) error {
	return p.bus.Publish(ctx, contractsv1.EventPacketsPublished, event)
}
