package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"meridian/contexts/access-control/delegation-service/adapters/memory"
	"meridian/contexts/access-control/delegation-service/domain/entities"
	domainerrors "meridian/contexts/access-control/delegation-service/domain/errors"
	"meridian/contexts/access-control/delegation-service/ports"
)

type fakeDirectory struct {
	assets  map[string]ports.AssetInfo
	managed map[string][]string
}

func (f fakeDirectory) GetAsset(_ context.Context, assetID string) (ports.AssetInfo, bool, error) {
	asset, ok := f.assets[assetID]
	return asset, ok, nil
}

func (f fakeDirectory) ListAssetIDsManagedBy(_ context.Context, organizationID string) ([]string, error) {
	return f.managed[organizationID], nil
}

type fakeSubscriptions struct {
	active map[string][]string
}

func (f fakeSubscriptions) HasActiveSubscription(_ context.Context, organizationID string, assetID string) (bool, error) {
	for _, id := range f.active[organizationID] {
		if id == assetID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeSubscriptions) ListActiveSubscriptionAssetIDs(_ context.Context, organizationID string) ([]string, error) {
	return f.active[organizationID], nil
}

type fakeAdmin struct {
	admins map[string]bool
}

func (f fakeAdmin) IsAdmin(_ context.Context, organizationID string) (bool, error) {
	return f.admins[organizationID], nil
}

func openNetwork() fakeDirectory {
	return fakeDirectory{
		assets: map[string]ports.AssetInfo{
			"asset-open":  {AssetID: "asset-open", ManagerID: "org-manager", IsActive: true},
			"asset-gated": {AssetID: "asset-gated", ManagerID: "org-manager", RequireApproval: true, IsActive: true},
		},
		managed: map[string][]string{"org-manager": {"asset-open", "asset-gated"}},
	}
}

func newCreateUseCase(store *memory.Store, directory fakeDirectory) CreateGrantUseCase {
	return CreateGrantUseCase{
		Repository:    store,
		Directory:     directory,
		Subscriptions: fakeSubscriptions{},
		Clock:         store,
		IDGenerator:   store,
	}
}

func TestCreateGrantRejectsInvalidInput(t *testing.T) {
	store := memory.NewStore()
	create := newCreateUseCase(store, openNetwork())
	ctx := context.Background()

	base := CreateGrantCommand{
		GrantorID:    "org-manager",
		GranteeID:    "org-lp",
		AssetScope:   entities.SpecificScope("asset-open"),
		TypeScope:    entities.AllScope(),
		Capabilities: entities.ViewOnly(),
	}

	selfGrant := base
	selfGrant.GranteeID = selfGrant.GrantorID
	if _, err := create.Execute(ctx, selfGrant); !errors.Is(err, domainerrors.ErrSelfGrant) {
		t.Fatalf("expected ErrSelfGrant, got %v", err)
	}

	noCaps := base
	noCaps.Capabilities = entities.Capabilities{}
	if _, err := create.Execute(ctx, noCaps); !errors.Is(err, domainerrors.ErrEmptyCapabilities) {
		t.Fatalf("expected ErrEmptyCapabilities, got %v", err)
	}

	noScope := base
	noScope.AssetScope = entities.SpecificScope()
	if _, err := create.Execute(ctx, noScope); !errors.Is(err, domainerrors.ErrEmptyAssetScope) {
		t.Fatalf("expected ErrEmptyAssetScope, got %v", err)
	}

	past := time.Now().UTC().Add(-time.Hour)
	stale := base
	stale.ExpiresAt = &past
	if _, err := create.Execute(ctx, stale); !errors.Is(err, domainerrors.ErrInvalidExpiry) {
		t.Fatalf("expected ErrInvalidExpiry, got %v", err)
	}

	missing := base
	missing.AssetScope = entities.SpecificScope("asset-unknown")
	if _, err := create.Execute(ctx, missing); !errors.Is(err, domainerrors.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestCreateGrantStartsActiveWithoutApprovalGate(t *testing.T) {
	store := memory.NewStore()
	create := newCreateUseCase(store, openNetwork())

	grant, err := create.Execute(context.Background(), CreateGrantCommand{
		GrantorID:    "org-manager",
		GranteeID:    "org-lp",
		AssetScope:   entities.SpecificScope("asset-open"),
		TypeScope:    entities.AllScope(),
		Capabilities: entities.ViewOnly(),
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if grant.Status != entities.GrantActive {
		t.Fatalf("expected active grant, got %s", grant.Status)
	}
}

func TestCreateGrantPendsWhenAssetGatesApproval(t *testing.T) {
	store := memory.NewStore()
	create := newCreateUseCase(store, openNetwork())

	// Grantor is not the gated asset's manager, so the grant awaits approval.
	grant, err := create.Execute(context.Background(), CreateGrantCommand{
		GrantorID:    "org-fund-admin",
		GranteeID:    "org-consultant",
		AssetScope:   entities.SpecificScope("asset-gated"),
		TypeScope:    entities.AllScope(),
		Capabilities: entities.ViewOnly(),
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if grant.Status != entities.GrantPendingApproval {
		t.Fatalf("expected pending approval, got %s", grant.Status)
	}
}

func TestCreateGrantByManagerSkipsApprovalGate(t *testing.T) {
	store := memory.NewStore()
	create := newCreateUseCase(store, openNetwork())

	grant, err := create.Execute(context.Background(), CreateGrantCommand{
		GrantorID:    "org-manager",
		GranteeID:    "org-lp",
		AssetScope:   entities.SpecificScope("asset-gated"),
		TypeScope:    entities.AllScope(),
		Capabilities: entities.ViewOnly(),
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if grant.Status != entities.GrantActive {
		t.Fatalf("the manager's own grants need no approval, got %s", grant.Status)
	}
}

func TestApproveGrantActivates(t *testing.T) {
	store := memory.NewStore()
	directory := openNetwork()
	create := newCreateUseCase(store, directory)
	decide := ApproveGrantUseCase{
		Repository:  store,
		Directory:   directory,
		Admin:       fakeAdmin{},
		Clock:       store,
		IDGenerator: store,
	}
	ctx := context.Background()

	grant, err := create.Execute(ctx, CreateGrantCommand{
		GrantorID:    "org-fund-admin",
		GranteeID:    "org-consultant",
		AssetScope:   entities.SpecificScope("asset-gated"),
		TypeScope:    entities.AllScope(),
		Capabilities: entities.ViewOnly(),
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	if _, err := decide.Execute(ctx, ApproveGrantCommand{
		ApproverID: "org-stranger",
		GrantID:    grant.GrantID,
		Approve:    true,
	}); !errors.Is(err, domainerrors.ErrNotApprover) {
		t.Fatalf("expected ErrNotApprover for non-manager, got %v", err)
	}

	updated, err := decide.Execute(ctx, ApproveGrantCommand{
		ApproverID: "org-manager",
		GrantID:    grant.GrantID,
		Approve:    true,
	})
	if err != nil {
		t.Fatalf("approve returned error: %v", err)
	}
	if updated.Status != entities.GrantActive {
		t.Fatalf("expected active after approval, got %s", updated.Status)
	}
	if updated.ApprovedBy == nil || *updated.ApprovedBy != "org-manager" {
		t.Fatalf("approval must record the approver")
	}

	// Deciding twice is an invalid transition; state is unchanged.
	if _, err := decide.Execute(ctx, ApproveGrantCommand{
		ApproverID: "org-manager",
		GrantID:    grant.GrantID,
		Approve:    false,
	}); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second decision, got %v", err)
	}
}

func TestRejectGrantIsTerminal(t *testing.T) {
	store := memory.NewStore()
	directory := openNetwork()
	create := newCreateUseCase(store, directory)
	decide := ApproveGrantUseCase{
		Repository:  store,
		Directory:   directory,
		Admin:       fakeAdmin{},
		Clock:       store,
		IDGenerator: store,
	}
	revoke := RevokeGrantUseCase{
		Repository:  store,
		Directory:   directory,
		Admin:       fakeAdmin{},
		Clock:       store,
		IDGenerator: store,
	}
	ctx := context.Background()

	grant, err := create.Execute(ctx, CreateGrantCommand{
		GrantorID:    "org-fund-admin",
		GranteeID:    "org-consultant",
		AssetScope:   entities.SpecificScope("asset-gated"),
		TypeScope:    entities.AllScope(),
		Capabilities: entities.ViewOnly(),
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	rejected, err := decide.Execute(ctx, ApproveGrantCommand{
		ApproverID: "org-manager",
		GrantID:    grant.GrantID,
		Approve:    false,
	})
	if err != nil {
		t.Fatalf("reject returned error: %v", err)
	}
	if rejected.Status != entities.GrantRejected {
		t.Fatalf("expected rejected status, got %s", rejected.Status)
	}

	if _, err := revoke.Execute(ctx, RevokeGrantCommand{
		ActorID: "org-fund-admin",
		GrantID: grant.GrantID,
	}); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition revoking a rejected grant, got %v", err)
	}
}

func TestRevokeGrantAuthority(t *testing.T) {
	store := memory.NewStore()
	directory := openNetwork()
	create := newCreateUseCase(store, directory)
	revoke := RevokeGrantUseCase{
		Repository:  store,
		Directory:   directory,
		Admin:       fakeAdmin{},
		Clock:       store,
		IDGenerator: store,
	}
	ctx := context.Background()

	grant, err := create.Execute(ctx, CreateGrantCommand{
		GrantorID:    "org-manager",
		GranteeID:    "org-lp",
		AssetScope:   entities.SpecificScope("asset-open"),
		TypeScope:    entities.AllScope(),
		Capabilities: entities.ViewOnly(),
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	if _, err := revoke.Execute(ctx, RevokeGrantCommand{
		ActorID: "org-stranger",
		GrantID: grant.GrantID,
	}); !errors.Is(err, domainerrors.ErrNotRevoker) {
		t.Fatalf("expected ErrNotRevoker for a stranger, got %v", err)
	}

	revoked, err := revoke.Execute(ctx, RevokeGrantCommand{
		ActorID: "org-manager",
		GrantID: grant.GrantID,
	})
	if err != nil {
		t.Fatalf("revoke returned error: %v", err)
	}
	if revoked.Status != entities.GrantRevoked {
		t.Fatalf("expected revoked status, got %s", revoked.Status)
	}
	if revoked.RevokedAt == nil {
		t.Fatalf("revocation must record its instant")
	}
}
