package queries

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"meridian/contexts/data-distribution/provenance-ledger/adapters/memory"
	"meridian/contexts/data-distribution/provenance-ledger/domain/entities"
	domainerrors "meridian/contexts/data-distribution/provenance-ledger/domain/errors"
	"meridian/contexts/data-distribution/provenance-ledger/domain/services"
	"meridian/contexts/data-distribution/provenance-ledger/ports"
)

// fakeAuthorizer allows viewing per (actor, type tag); "*" covers every type.
type fakeAuthorizer struct {
	view map[string][]string
}

func (f fakeAuthorizer) CanPublish(_ context.Context, _ string, _ string, _ string) (ports.AccessDecision, error) {
	return ports.AccessDecision{Allowed: false, Reason: "no matching grant or direct relationship"}, nil
}

func (f fakeAuthorizer) CanViewData(_ context.Context, actorID string, _ string, typeTag string) (ports.AccessDecision, error) {
	for _, tag := range f.view[actorID] {
		if tag == "*" || tag == typeTag {
			return ports.AccessDecision{Allowed: true, Reason: "delegated grant"}, nil
		}
	}
	return ports.AccessDecision{Allowed: false, Reason: "no matching grant or direct relationship"}, nil
}

func sealedPacket(t *testing.T, store *memory.Store, packet entities.DataPacket) entities.DataPacket {
	t.Helper()
	hash, err := services.ContentHash(packet)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	packet.ContentHash = hash
	if err := store.CreatePacket(context.Background(), ports.CreatePacketInput{
		Packet:   packet,
		OutboxID: "outbox-" + packet.PacketID,
	}); err != nil {
		t.Fatalf("seed packet failed: %v", err)
	}
	return packet
}

func navPacket(id string, at time.Time) entities.DataPacket {
	return entities.DataPacket{
		PacketID:    id,
		AssetID:     "asset-1",
		PublisherID: "org-manager",
		Type:        entities.PacketNAVUpdate,
		PeriodLabel: "2026-Q2",
		Payload:     json.RawMessage(`{"nav":104.2}`),
		Version:     1,
		PublishedAt: at,
	}
}

func TestGetPacketVerifiesIntegrity(t *testing.T) {
	store := memory.NewStore()
	get := GetPacketUseCase{
		Repository: store,
		Authorizer: fakeAuthorizer{view: map[string][]string{"org-lp": {"*"}}},
	}
	ctx := context.Background()
	packet := sealedPacket(t, store, navPacket("packet-1", time.Now().UTC()))

	fetched, err := get.Execute(ctx, GetPacketQuery{ActorID: "org-lp", PacketID: packet.PacketID})
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if fetched.ContentHash != packet.ContentHash {
		t.Fatalf("fetched packet must carry its sealed hash")
	}

	store.TamperPayload(packet.PacketID, json.RawMessage(`{"nav":999.9}`))
	if _, err := get.Execute(ctx, GetPacketQuery{ActorID: "org-lp", PacketID: packet.PacketID}); !errors.Is(err, domainerrors.ErrIntegrityViolation) {
		t.Fatalf("expected ErrIntegrityViolation after tamper, got %v", err)
	}
}

func TestGetPacketDeniesOutsiders(t *testing.T) {
	store := memory.NewStore()
	get := GetPacketUseCase{Repository: store, Authorizer: fakeAuthorizer{}}
	packet := sealedPacket(t, store, navPacket("packet-1", time.Now().UTC()))

	if _, err := get.Execute(context.Background(), GetPacketQuery{
		ActorID:  "org-stranger",
		PacketID: packet.PacketID,
	}); !errors.Is(err, domainerrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}
