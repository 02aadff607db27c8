package commands

import (
	"context"

	"meridian/contexts/access-control/delegation-service/domain/entities"
	"meridian/contexts/access-control/delegation-service/ports"
)

// canApprove reports whether the actor may decide a pending grant: admin:all,
// or manager of every explicitly scoped asset that gates on approval. For an
// ALL scope the actor must manage at least one asset (the pending state can
// only have come from an asset they manage requiring approval).
func canApprove(ctx context.Context, directory ports.AssetDirectory, admin ports.AdminChecker, actorID string, grant entities.AccessGrant) (bool, error) {
	if admin != nil {
		isAdmin, err := admin.IsAdmin(ctx, actorID)
		if err != nil {
			return false, err
		}
		if isAdmin {
			return true, nil
		}
	}
	if grant.AssetScope.IsAll() {
		managed, err := directory.ListAssetIDsManagedBy(ctx, actorID)
		if err != nil {
			return false, err
		}
		return len(managed) > 0, nil
	}
	decided := false
	for _, assetID := range grant.AssetScope.IDs() {
		asset, found, err := directory.GetAsset(ctx, assetID)
		if err != nil {
			return false, err
		}
		if !found || !asset.RequireApproval {
			continue
		}
		if asset.ManagerID != actorID {
			return false, nil
		}
		decided = true
	}
	return decided, nil
}

// canRevoke reports whether the actor may revoke an active grant: the grantor
// itself, admin:all, or the manager of any scoped asset.
func canRevoke(ctx context.Context, directory ports.AssetDirectory, admin ports.AdminChecker, actorID string, grant entities.AccessGrant) (bool, error) {
	if actorID == grant.GrantorID {
		return true, nil
	}
	if admin != nil {
		isAdmin, err := admin.IsAdmin(ctx, actorID)
		if err != nil {
			return false, err
		}
		if isAdmin {
			return true, nil
		}
	}
	if grant.AssetScope.IsAll() {
		managed, err := directory.ListAssetIDsManagedBy(ctx, actorID)
		if err != nil {
			return false, err
		}
		return len(managed) > 0, nil
	}
	for _, assetID := range grant.AssetScope.IDs() {
		asset, found, err := directory.GetAsset(ctx, assetID)
		if err != nil {
			return false, err
		}
		if found && asset.ManagerID == actorID {
			return true, nil
		}
	}
	return false, nil
}
