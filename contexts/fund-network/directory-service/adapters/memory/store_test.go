package memory

import (
	"context"
	"errors"
	"testing"

	"meridian/contexts/fund-network/directory-service/domain/entities"
	domainerrors "meridian/contexts/fund-network/directory-service/domain/errors"
)

func mustCreateAsset(t *testing.T, store *Store, asset entities.Asset) {
	t.Helper()
	if err := store.CreateAsset(context.Background(), asset); err != nil {
		t.Fatalf("create asset failed: %v", err)
	}
}

func TestCreateAssetRejectsDuplicatesAndCycles(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	mustCreateAsset(t, store, entities.Asset{AssetID: "fund-1", ManagerID: "org-manager"})
	if err := store.CreateAsset(ctx, entities.Asset{AssetID: "fund-1", ManagerID: "org-manager"}); !errors.Is(err, domainerrors.ErrAssetAlreadyExists) {
		t.Fatalf("expected ErrAssetAlreadyExists, got %v", err)
	}

	parent := "fund-1"
	mustCreateAsset(t, store, entities.Asset{AssetID: "fund-1-feeder", ManagerID: "org-manager", ParentID: &parent})

	// A vehicle cannot sit inside its own ancestry.
	self := "fund-loop"
	if err := store.CreateAsset(ctx, entities.Asset{AssetID: "fund-loop", ManagerID: "org-manager", ParentID: &self}); !errors.Is(err, domainerrors.ErrAssetParentCycle) {
		t.Fatalf("expected ErrAssetParentCycle, got %v", err)
	}
}

func TestDeactivationIsSoft(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.CreateOrganization(ctx, entities.Organization{
		OrganizationID: "org-lp",
		Name:           "Harbor Point LP",
		Kind:           entities.KindLimitedPartner,
	}); err != nil {
		t.Fatalf("create organization failed: %v", err)
	}

	if err := store.DeactivateOrganization(ctx, "org-lp"); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	organization, err := store.GetOrganization(ctx, "org-lp")
	if err != nil {
		t.Fatalf("deactivated organization must stay resolvable: %v", err)
	}
	if organization.IsActive {
		t.Fatalf("deactivation must clear the active flag")
	}

	if err := store.DeactivateOrganization(ctx, "org-ghost"); !errors.Is(err, domainerrors.ErrOrganizationNotFound) {
		t.Fatalf("expected ErrOrganizationNotFound, got %v", err)
	}
}

func TestListAssetsManagedByFilters(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	mustCreateAsset(t, store, entities.Asset{AssetID: "fund-b", ManagerID: "org-manager"})
	mustCreateAsset(t, store, entities.Asset{AssetID: "fund-a", ManagerID: "org-manager"})
	mustCreateAsset(t, store, entities.Asset{AssetID: "fund-other", ManagerID: "org-rival"})

	managed, err := store.ListAssetsManagedBy(ctx, "org-manager")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(managed) != 2 || managed[0].AssetID != "fund-a" || managed[1].AssetID != "fund-b" {
		t.Fatalf("expected [fund-a fund-b], got %+v", managed)
	}
}
