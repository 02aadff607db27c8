package queries

import (
	"context"
	"testing"
	"time"

	"meridian/contexts/access-control/delegation-service/adapters/memory"
	"meridian/contexts/access-control/delegation-service/domain/entities"
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

func seedGrant(t *testing.T, store *memory.Store, grant entities.AccessGrant) {
	t.Helper()
	if err := store.CreateGrant(context.Background(), ports.CreateGrantInput{
		Grant:    grant,
		OutboxID: "outbox-" + grant.GrantID,
	}); err != nil {
		t.Fatalf("seed grant failed: %v", err)
	}
}

func TestEffectiveCapabilitiesIntersectGrantorHoldings(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().UTC()

	// The grantor is a plain subscriber: it holds view only, so the delegated
	// manage flag evaporates at evaluation time.
	seedGrant(t, store, entities.AccessGrant{
		GrantID:    "grant-1",
		GrantorID:  "org-lp",
		GranteeID:  "org-consultant",
		AssetScope: entities.SpecificScope("asset-1"),
		TypeScope:  entities.AllScope(),
		Capabilities: entities.Capabilities{
			CanViewData:            true,
			CanManageSubscriptions: true,
		},
		Status:    entities.GrantActive,
		ValidFrom: now.Add(-time.Hour),
		CreatedAt: now.Add(-time.Hour),
	})

	effective := EffectiveCapabilitiesUseCase{
		Repository: store,
		Directory: fakeDirectory{assets: map[string]ports.AssetInfo{
			"asset-1": {AssetID: "asset-1", ManagerID: "org-manager", IsActive: true},
		}},
		Subscriptions: fakeSubscriptions{active: map[string][]string{"org-lp": {"asset-1"}}},
		Clock:         store,
	}

	caps, err := effective.Execute(context.Background(), EffectiveCapabilitiesQuery{
		GrantID: "grant-1",
		AssetID: "asset-1",
	})
	if err != nil {
		t.Fatalf("effective returned error: %v", err)
	}
	if !caps.CanViewData {
		t.Fatalf("shared view capability must survive, got %+v", caps)
	}
	if caps.CanManageSubscriptions {
		t.Fatalf("manage must be stripped when the grantor lacks it, got %+v", caps)
	}
}

func TestEffectiveCapabilitiesEmptyPastExpiry(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().UTC()
	expired := now.Add(-time.Minute)

	seedGrant(t, store, entities.AccessGrant{
		GrantID:      "grant-expired",
		GrantorID:    "org-manager",
		GranteeID:    "org-lp",
		AssetScope:   entities.SpecificScope("asset-1"),
		TypeScope:    entities.AllScope(),
		Capabilities: entities.ViewOnly(),
		Status:       entities.GrantActive,
		ValidFrom:    now.Add(-time.Hour),
		ExpiresAt:    &expired,
		CreatedAt:    now.Add(-time.Hour),
	})

	effective := EffectiveCapabilitiesUseCase{
		Repository: store,
		Directory: fakeDirectory{assets: map[string]ports.AssetInfo{
			"asset-1": {AssetID: "asset-1", ManagerID: "org-manager", IsActive: true},
		}},
		Subscriptions: fakeSubscriptions{},
		Clock:         store,
	}

	caps, err := effective.Execute(context.Background(), EffectiveCapabilitiesQuery{
		GrantID: "grant-expired",
		AssetID: "asset-1",
	})
	if err != nil {
		t.Fatalf("effective returned error: %v", err)
	}
	if !caps.IsZero() {
		t.Fatalf("expired grant must confer nothing, got %+v", caps)
	}
}

func TestListGrantsDerivesExpiredStatus(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().UTC()
	expired := now.Add(-time.Minute)

	seedGrant(t, store, entities.AccessGrant{
		GrantID:      "grant-old",
		GrantorID:    "org-manager",
		GranteeID:    "org-lp",
		AssetScope:   entities.SpecificScope("asset-1"),
		TypeScope:    entities.AllScope(),
		Capabilities: entities.ViewOnly(),
		Status:       entities.GrantActive,
		ValidFrom:    now.Add(-time.Hour),
		ExpiresAt:    &expired,
		CreatedAt:    now.Add(-time.Hour),
	})

	list := ListGrantsUseCase{Repository: store, Clock: store}

	items, err := list.Execute(context.Background(), ListGrantsQuery{GranteeID: "org-lp"})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(items) != 1 || items[0].Status != entities.GrantExpired {
		t.Fatalf("expected one grant reading expired, got %+v", items)
	}

	live, err := list.Execute(context.Background(), ListGrantsQuery{GranteeID: "org-lp", LiveOnly: true})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(live) != 0 {
		t.Fatalf("live-only listing must drop expired grants, got %d", len(live))
	}
}
