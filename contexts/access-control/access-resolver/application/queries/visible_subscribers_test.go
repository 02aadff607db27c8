package queries

import (
	"context"
	"testing"
	"time"

	grantmemory "meridian/contexts/access-control/delegation-service/adapters/memory"
	grantentities "meridian/contexts/access-control/delegation-service/domain/entities"
)

func newVisibility(grants *grantmemory.Store, subs fakeSubscriptions) VisibleSubscribersUseCase {
	return VisibleSubscribersUseCase{
		CanPerform:    newResolver(grants, fundNetwork(), subs, fakeAdmin{}),
		Subscriptions: subs,
	}
}

func TestManagerSeesEverySubscriber(t *testing.T) {
	visibility := newVisibility(grantmemory.NewStore(), fakeSubscriptions{
		subscribers: map[string][]string{"asset-1": {"org-lp-1", "org-lp-2"}},
	})

	visible, err := visibility.Execute(context.Background(), VisibleSubscribersQuery{
		ActorID: "org-manager",
		AssetID: "asset-1",
	})
	if err != nil {
		t.Fatalf("visibility returned error: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("manager must see the full list, got %v", visible)
	}
}

func TestSubscriberSeesOnlyItself(t *testing.T) {
	visibility := newVisibility(grantmemory.NewStore(), fakeSubscriptions{
		active:      map[string]bool{"org-lp-1/asset-1": true},
		subscribers: map[string][]string{"asset-1": {"org-lp-1", "org-lp-2"}},
	})

	visible, err := visibility.Execute(context.Background(), VisibleSubscribersQuery{
		ActorID: "org-lp-1",
		AssetID: "asset-1",
	})
	if err != nil {
		t.Fatalf("visibility returned error: %v", err)
	}
	if len(visible) != 1 || visible[0] != "org-lp-1" {
		t.Fatalf("a plain subscriber sees only itself, got %v", visible)
	}
}

func TestStrangerSeesNothingWithoutError(t *testing.T) {
	visibility := newVisibility(grantmemory.NewStore(), fakeSubscriptions{
		subscribers: map[string][]string{"asset-1": {"org-lp-1"}},
	})

	visible, err := visibility.Execute(context.Background(), VisibleSubscribersQuery{
		ActorID: "org-stranger",
		AssetID: "asset-1",
	})
	if err != nil {
		t.Fatalf("confidentiality is not an error path: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("stranger must see nothing, got %v", visible)
	}
}

func TestSubscriberWithViewGrantSeesEveryone(t *testing.T) {
	store := grantmemory.NewStore()
	now := time.Now().UTC()

	// org-lp-1 is an active subscriber and also holds a delegated view grant;
	// the grant entitles it to the full list despite the subscription.
	seedGrant(t, store, grantentities.AccessGrant{
		GrantID:      "grant-view",
		GrantorID:    "org-manager",
		GranteeID:    "org-lp-1",
		AssetScope:   grantentities.SpecificScope("asset-1"),
		TypeScope:    grantentities.AllScope(),
		Capabilities: grantentities.ViewOnly(),
		Status:       grantentities.GrantActive,
		ValidFrom:    now.Add(-time.Hour),
		CreatedAt:    now.Add(-time.Hour),
	})

	visibility := newVisibility(store, fakeSubscriptions{
		active:      map[string]bool{"org-lp-1/asset-1": true},
		subscribers: map[string][]string{"asset-1": {"org-lp-1", "org-lp-2"}},
	})

	visible, err := visibility.Execute(context.Background(), VisibleSubscribersQuery{
		ActorID: "org-lp-1",
		AssetID: "asset-1",
	})
	if err != nil {
		t.Fatalf("visibility returned error: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("a view grantee must see the full list even while subscribed, got %v", visible)
	}
}

func TestManageDelegateSeesEverySubscriber(t *testing.T) {
	store := grantmemory.NewStore()
	now := time.Now().UTC()

	seedGrant(t, store, grantentities.AccessGrant{
		GrantID:    "grant-admin",
		GrantorID:  "org-manager",
		GranteeID:  "org-fund-admin",
		AssetScope: grantentities.SpecificScope("asset-1"),
		TypeScope:  grantentities.AllScope(),
		Capabilities: grantentities.Capabilities{
			CanViewData:            true,
			CanManageSubscriptions: true,
		},
		Status:    grantentities.GrantActive,
		ValidFrom: now.Add(-time.Hour),
		CreatedAt: now.Add(-time.Hour),
	})

	visibility := newVisibility(store, fakeSubscriptions{
		subscribers: map[string][]string{"asset-1": {"org-lp-1", "org-lp-2"}},
	})

	visible, err := visibility.Execute(context.Background(), VisibleSubscribersQuery{
		ActorID: "org-fund-admin",
		AssetID: "asset-1",
	})
	if err != nil {
		t.Fatalf("visibility returned error: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("a manage delegate must see the full list, got %v", visible)
	}
}
