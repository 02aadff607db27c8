package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"meridian/contexts/access-control/delegation-service/domain/entities"
	domainerrors "meridian/contexts/access-control/delegation-service/domain/errors"
	"meridian/contexts/access-control/delegation-service/ports"
)

func TestTransitionGrantChecksExpectedStatus(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := store.CreateGrant(ctx, ports.CreateGrantInput{
		Grant: entities.AccessGrant{
			GrantID:      "grant-1",
			GrantorID:    "org-a",
			GranteeID:    "org-b",
			AssetScope:   entities.SpecificScope("asset-1"),
			TypeScope:    entities.AllScope(),
			Capabilities: entities.ViewOnly(),
			Status:       entities.GrantPendingApproval,
			ValidFrom:    now,
			CreatedAt:    now,
		},
		OutboxID: "outbox-1",
	}); err != nil {
		t.Fatalf("create grant failed: %v", err)
	}

	// A transition expecting the wrong current status must not change state.
	if _, err := store.TransitionGrant(ctx, ports.GrantTransitionInput{
		GrantID:  "grant-1",
		OutboxID: "outbox-2",
		From:     entities.GrantActive,
		To:       entities.GrantRevoked,
		ActorID:  "org-a",
		At:       now,
	}); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	updated, err := store.TransitionGrant(ctx, ports.GrantTransitionInput{
		GrantID:  "grant-1",
		OutboxID: "outbox-3",
		From:     entities.GrantPendingApproval,
		To:       entities.GrantActive,
		ActorID:  "org-manager",
		At:       now,
	})
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if updated.Status != entities.GrantActive || updated.ApprovedBy == nil {
		t.Fatalf("expected approved active grant, got %+v", updated)
	}
}

func TestOutboxRowsDrainOnPublish(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := store.CreateGrant(ctx, ports.CreateGrantInput{
		Grant: entities.AccessGrant{
			GrantID:      "grant-1",
			GrantorID:    "org-a",
			GranteeID:    "org-b",
			AssetScope:   entities.AllScope(),
			TypeScope:    entities.AllScope(),
			Capabilities: entities.ViewOnly(),
			Status:       entities.GrantActive,
			ValidFrom:    now,
			CreatedAt:    now,
		},
		OutboxID: "outbox-1",
	}); err != nil {
		t.Fatalf("create grant failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != "grants.changed" {
		t.Fatalf("expected one pending grants.changed row, got %+v", pending)
	}

	if err := store.MarkOutboxPublished(ctx, "outbox-1", now); err != nil {
		t.Fatalf("mark published failed: %v", err)
	}
	pending, err = store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("published rows must leave the pending set, got %d", len(pending))
	}
}

func TestImportLegacyRowsNormalize(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	imported := store.ImportLegacyDelegation(entities.LegacyDelegation{
		DelegationID: "d-1",
		FromOrgID:    "org-manager",
		ToOrgID:      "org-admin",
		AssetIDs:     []string{"asset-1"},
		IsActive:     true,
		CreatedAt:    time.Now().UTC().Add(-time.Hour),
	})

	grants, err := store.GrantsFor(ctx, "org-admin")
	if err != nil {
		t.Fatalf("grants for failed: %v", err)
	}
	if len(grants) != 1 || grants[0].GrantID != imported.GrantID {
		t.Fatalf("imported legacy row must list under its grantee, got %+v", grants)
	}
	if !grants[0].IsLive(time.Now().UTC()) {
		t.Fatalf("active legacy delegation must be live after import")
	}
}
