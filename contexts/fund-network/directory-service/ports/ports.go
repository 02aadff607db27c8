package ports

import (
	"context"
	"time"

	"meridian/contexts/fund-network/directory-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// Directory is the read boundary consumed by the access-control engine.
type Directory interface {
	GetOrganization(ctx context.Context, organizationID string) (entities.Organization, error)
	GetAsset(ctx context.Context, assetID string) (entities.Asset, error)
	ListAssetsManagedBy(ctx context.Context, organizationID string) ([]entities.Asset, error)
	ListAssets(ctx context.Context) ([]entities.Asset, error)
}

// Registry is the administrative write boundary. Organizations and assets are
// never hard-deleted, only deactivated.
type Registry interface {
	CreateOrganization(ctx context.Context, organization entities.Organization) error
	CreateAsset(ctx context.Context, asset entities.Asset) error
	DeactivateOrganization(ctx context.Context, organizationID string) error
	DeactivateAsset(ctx context.Context, assetID string) error
}
