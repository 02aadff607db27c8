package queries

import (
	"context"
	"strings"

	"meridian/contexts/fund-network/directory-service/domain/entities"
	domainerrors "meridian/contexts/fund-network/directory-service/domain/errors"
	"meridian/contexts/fund-network/directory-service/ports"
)

// GetAssetUseCase resolves one asset by identifier.
type GetAssetUseCase struct {
	Directory ports.Directory
}

func (u GetAssetUseCase) Execute(ctx context.Context, assetID string) (entities.Asset, error) {
	if strings.TrimSpace(assetID) == "" {
		return entities.Asset{}, domainerrors.ErrInvalidAssetID
	}
	return u.Directory.GetAsset(ctx, assetID)
}

// GetOrganizationUseCase resolves one organization by identifier.
type GetOrganizationUseCase struct {
	Directory ports.Directory
}

func (u GetOrganizationUseCase) Execute(ctx context.Context, organizationID string) (entities.Organization, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Organization{}, domainerrors.ErrInvalidOrganizationID
	}
	return u.Directory.GetOrganization(ctx, organizationID)
}
