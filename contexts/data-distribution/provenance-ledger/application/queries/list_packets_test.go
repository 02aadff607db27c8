package queries

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"meridian/contexts/data-distribution/provenance-ledger/adapters/memory"
	"meridian/contexts/data-distribution/provenance-ledger/domain/entities"
)

func TestListScreensPerPacketType(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().UTC()
	sealedPacket(t, store, navPacket("packet-nav", now))
	sealedPacket(t, store, entities.DataPacket{
		PacketID:    "packet-tax",
		AssetID:     "asset-1",
		PublisherID: "org-manager",
		Type:        entities.PacketTaxDocument,
		Payload:     json.RawMessage(`{"form":"K-1"}`),
		Version:     1,
		PublishedAt: now.Add(time.Second),
	})

	// The actor is delegated tax documents only; the nav update must stay
	// hidden even though both packets share the asset.
	list := ListPacketsUseCase{
		Repository: store,
		Authorizer: fakeAuthorizer{view: map[string][]string{"org-tax": {"tax_document"}}},
	}

	items, err := list.Execute(context.Background(), ListPacketsQuery{ActorID: "org-tax", AssetID: "asset-1"})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(items) != 1 || items[0].PacketID != "packet-tax" {
		t.Fatalf("expected only the tax packet, got %+v", items)
	}
}

func TestListIsEmptyForDeniedActor(t *testing.T) {
	store := memory.NewStore()
	sealedPacket(t, store, navPacket("packet-1", time.Now().UTC()))

	list := ListPacketsUseCase{Repository: store, Authorizer: fakeAuthorizer{}}

	items, err := list.Execute(context.Background(), ListPacketsQuery{ActorID: "org-stranger", AssetID: "asset-1"})
	if err != nil {
		t.Fatalf("visibility filtering is not an error path: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("denied actor must see nothing, got %d packets", len(items))
	}
}

func TestListCorrectionsOnlyAndUnread(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().UTC()
	original := sealedPacket(t, store, navPacket("packet-1", now))
	parentID := original.PacketID
	correction := sealedPacket(t, store, entities.DataPacket{
		PacketID:       "packet-2",
		AssetID:        "asset-1",
		PublisherID:    "org-manager",
		Type:           entities.PacketNAVUpdate,
		PeriodLabel:    "2026-Q2",
		Payload:        json.RawMessage(`{"nav":104.7}`),
		Version:        2,
		ParentID:       &parentID,
		CorrectionNote: "nav recomputed",
		PublishedAt:    now.Add(time.Second),
	})

	list := ListPacketsUseCase{
		Repository: store,
		Authorizer: fakeAuthorizer{view: map[string][]string{"org-lp": {"*"}}},
	}
	ctx := context.Background()

	corrections, err := list.Execute(ctx, ListPacketsQuery{ActorID: "org-lp", AssetID: "asset-1", CorrectionsOnly: true})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(corrections) != 1 || corrections[0].PacketID != correction.PacketID {
		t.Fatalf("corrections-only must list the superseding packet, got %+v", corrections)
	}

	if _, err := store.MarkRead(ctx, entities.ReadReceipt{
		PacketID: original.PacketID,
		ReaderID: "org-lp",
		ReadAt:   now,
	}); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	unread, err := list.Execute(ctx, ListPacketsQuery{ActorID: "org-lp", AssetID: "asset-1", UnreadOnly: true})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(unread) != 1 || unread[0].PacketID != correction.PacketID {
		t.Fatalf("unread listing must drop read packets, got %+v", unread)
	}
}
