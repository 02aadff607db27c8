package commands

import (
	"context"
	"errors"
	"testing"

	"meridian/contexts/fund-network/subscription-service/adapters/memory"
	"meridian/contexts/fund-network/subscription-service/domain/entities"
	domainerrors "meridian/contexts/fund-network/subscription-service/domain/errors"
	"meridian/contexts/fund-network/subscription-service/ports"
)

type fakeDirectory struct {
	assets map[string]ports.AssetInfo
}

func (f fakeDirectory) GetAsset(_ context.Context, assetID string) (ports.AssetInfo, bool, error) {
	asset, ok := f.assets[assetID]
	return asset, ok, nil
}

func managedAsset() fakeDirectory {
	return fakeDirectory{assets: map[string]ports.AssetInfo{
		"asset-1": {AssetID: "asset-1", ManagerID: "org-manager", IsActive: true},
	}}
}

func newWorkflow(store *memory.Store, directory fakeDirectory) (InviteSubscriberUseCase, RequestAccessUseCase, RespondToSubscriptionUseCase) {
	invite := InviteSubscriberUseCase{
		Repository:  store,
		Directory:   directory,
		Clock:       store,
		IDGenerator: store,
	}
	request := RequestAccessUseCase{
		Repository:  store,
		Directory:   directory,
		Clock:       store,
		IDGenerator: store,
	}
	respond := RespondToSubscriptionUseCase{
		Repository: store,
		Directory:  directory,
		Clock:      store,
	}
	return invite, request, respond
}

func TestInvitationAcceptedBySubscriber(t *testing.T) {
	store := memory.NewStore()
	invite, _, respond := newWorkflow(store, managedAsset())
	ctx := context.Background()

	amount := 500000.0
	subscription, err := invite.Execute(ctx, InviteSubscriberCommand{
		ManagerID:          "org-manager",
		AssetID:            "asset-1",
		SubscriberID:       "org-lp",
		CommitmentAmount:   &amount,
		CommitmentCurrency: "USD",
		AccessLevel:        "full",
	})
	if err != nil {
		t.Fatalf("invite returned error: %v", err)
	}
	if subscription.Status != entities.SubscriptionPendingInvitation {
		t.Fatalf("expected pending invitation, got %s", subscription.Status)
	}

	accepted, err := respond.Execute(ctx, RespondToSubscriptionCommand{
		ActorID:        "org-lp",
		SubscriptionID: subscription.SubscriptionID,
		Accept:         true,
	})
	if err != nil {
		t.Fatalf("respond returned error: %v", err)
	}
	if accepted.Status != entities.SubscriptionActive {
		t.Fatalf("expected active after acceptance, got %s", accepted.Status)
	}
	if accepted.RespondedAt == nil {
		t.Fatalf("acceptance must record its instant")
	}
}

func TestInviteRequiresTheAssetManager(t *testing.T) {
	store := memory.NewStore()
	invite, _, _ := newWorkflow(store, managedAsset())

	if _, err := invite.Execute(context.Background(), InviteSubscriberCommand{
		ManagerID:    "org-stranger",
		AssetID:      "asset-1",
		SubscriberID: "org-lp",
	}); !errors.Is(err, domainerrors.ErrNotAssetManager) {
		t.Fatalf("expected ErrNotAssetManager, got %v", err)
	}

	if _, err := invite.Execute(context.Background(), InviteSubscriberCommand{
		ManagerID:    "org-manager",
		AssetID:      "asset-ghost",
		SubscriberID: "org-lp",
	}); !errors.Is(err, domainerrors.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestOneSubscriptionPerPair(t *testing.T) {
	store := memory.NewStore()
	invite, request, _ := newWorkflow(store, managedAsset())
	ctx := context.Background()

	if _, err := invite.Execute(ctx, InviteSubscriberCommand{
		ManagerID:    "org-manager",
		AssetID:      "asset-1",
		SubscriberID: "org-lp",
	}); err != nil {
		t.Fatalf("invite returned error: %v", err)
	}

	if _, err := invite.Execute(ctx, InviteSubscriberCommand{
		ManagerID:    "org-manager",
		AssetID:      "asset-1",
		SubscriberID: "org-lp",
	}); !errors.Is(err, domainerrors.ErrSubscriptionAlreadyExists) {
		t.Fatalf("expected ErrSubscriptionAlreadyExists on repeat invite, got %v", err)
	}

	// The pair constraint holds across both entry paths.
	if _, err := request.Execute(ctx, RequestAccessCommand{
		SubscriberID: "org-lp",
		AssetID:      "asset-1",
	}); !errors.Is(err, domainerrors.ErrSubscriptionAlreadyExists) {
		t.Fatalf("expected ErrSubscriptionAlreadyExists on request over invite, got %v", err)
	}
}

func TestRequestIsAnsweredByTheManager(t *testing.T) {
	store := memory.NewStore()
	_, request, respond := newWorkflow(store, managedAsset())
	ctx := context.Background()

	subscription, err := request.Execute(ctx, RequestAccessCommand{
		SubscriberID: "org-lp",
		AssetID:      "asset-1",
		AccessLevel:  "reports_only",
	})
	if err != nil {
		t.Fatalf("request returned error: %v", err)
	}
	if subscription.Status != entities.SubscriptionPendingRequest {
		t.Fatalf("expected pending request, got %s", subscription.Status)
	}

	// The requester cannot answer its own request.
	if _, err := respond.Execute(ctx, RespondToSubscriptionCommand{
		ActorID:        "org-lp",
		SubscriptionID: subscription.SubscriptionID,
		Accept:         true,
	}); !errors.Is(err, domainerrors.ErrNotCounterparty) {
		t.Fatalf("expected ErrNotCounterparty, got %v", err)
	}

	approved, err := respond.Execute(ctx, RespondToSubscriptionCommand{
		ActorID:        "org-manager",
		SubscriptionID: subscription.SubscriptionID,
		Accept:         true,
	})
	if err != nil {
		t.Fatalf("respond returned error: %v", err)
	}
	if approved.Status != entities.SubscriptionActive {
		t.Fatalf("expected active after approval, got %s", approved.Status)
	}
}

func TestRespondingTwiceIsInvalid(t *testing.T) {
	store := memory.NewStore()
	invite, _, respond := newWorkflow(store, managedAsset())
	ctx := context.Background()

	subscription, err := invite.Execute(ctx, InviteSubscriberCommand{
		ManagerID:    "org-manager",
		AssetID:      "asset-1",
		SubscriberID: "org-lp",
	})
	if err != nil {
		t.Fatalf("invite returned error: %v", err)
	}

	if _, err := respond.Execute(ctx, RespondToSubscriptionCommand{
		ActorID:        "org-lp",
		SubscriptionID: subscription.SubscriptionID,
		Accept:         false,
	}); err != nil {
		t.Fatalf("decline returned error: %v", err)
	}

	if _, err := respond.Execute(ctx, RespondToSubscriptionCommand{
		ActorID:        "org-lp",
		SubscriptionID: subscription.SubscriptionID,
		Accept:         true,
	}); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second response, got %v", err)
	}
}
