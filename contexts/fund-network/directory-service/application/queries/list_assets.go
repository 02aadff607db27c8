package queries

import (
	"context"
	"strings"

	"meridian/contexts/fund-network/directory-service/domain/entities"
	"meridian/contexts/fund-network/directory-service/ports"
)

// ListAssetsQuery optionally narrows the listing to one manager.
type ListAssetsQuery struct {
	ManagerID string
}

// ListAssetsUseCase lists assets, optionally filtered by managing organization.
type ListAssetsUseCase struct {
	Directory ports.Directory
}

func (u ListAssetsUseCase) Execute(ctx context.Context, query ListAssetsQuery) ([]entities.Asset, error) {
	if strings.TrimSpace(query.ManagerID) != "" {
		return u.Directory.ListAssetsManagedBy(ctx, query.ManagerID)
	}
	return u.Directory.ListAssets(ctx)
}
