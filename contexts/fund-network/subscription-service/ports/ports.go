package ports

import (
	"context"
	"time"

	"meridian/contexts/fund-network/subscription-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for subscription rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// AssetInfo is the directory projection this module needs.
type AssetInfo struct {
	AssetID   string
	ManagerID string
	IsActive  bool
}

// AssetDirectory resolves assets from the fund-network directory.
type AssetDirectory interface {
	GetAsset(ctx context.Context, assetID string) (AssetInfo, bool, error)
}

// AuditRecorder appends authorization-relevant actions best-effort.
type AuditRecorder interface {
	RecordAuditAction(
		ctx context.Context,
		actorID string,
		action string,
		resourceType string,
		resourceID string,
		organizationID string,
		details map[string]string,
	) error
}

// Repository is the write/read boundary for subscription state.
type Repository interface {
	CreateSubscription(ctx context.Context, subscription entities.Subscription) error
	GetSubscription(ctx context.Context, subscriptionID string) (entities.Subscription, error)
	UpdateSubscription(ctx context.Context, subscription entities.Subscription) error
	ListByAsset(ctx context.Context, assetID string) ([]entities.Subscription, error)
	ListBySubscriber(ctx context.Context, subscriberID string) ([]entities.Subscription, error)
	FindByAssetAndSubscriber(ctx context.Context, assetID string, subscriberID string) (entities.Subscription, bool, error)
}
