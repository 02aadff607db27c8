package ports

import (
	"context"
	"time"

	grantentities "meridian/contexts/access-control/delegation-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// AssetInfo is the directory projection the resolver needs.
type AssetInfo struct {
	AssetID   string
	ManagerID string
	IsActive  bool
}

// AssetDirectory resolves assets from the fund-network directory.
type AssetDirectory interface {
	GetAsset(ctx context.Context, assetID string) (AssetInfo, bool, error)
}

// SubscriptionReader exposes the subscription facts access checks need.
type SubscriptionReader interface {
	HasActiveSubscription(ctx context.Context, organizationID string, assetID string) (bool, error)
	ListSubscriberIDs(ctx context.Context, assetID string) ([]string, error)
}

// GrantReader lists an organization's inbound grants. The resolver filters to
// live grants itself so expiry is always evaluated at check time.
type GrantReader interface {
	GrantsFor(ctx context.Context, granteeID string) ([]grantentities.AccessGrant, error)
}

// AdminChecker reports whether an organization's role baseline carries
// admin:all.
type AdminChecker interface {
	IsAdmin(ctx context.Context, organizationID string) (bool, error)
}
