package services

import (
	"encoding/json"
	"testing"
	"time"

	"meridian/contexts/data-distribution/provenance-ledger/domain/entities"
)

func basePacket(payload string) entities.DataPacket {
	return entities.DataPacket{
		PacketID:    "packet-1",
		AssetID:     "asset-1",
		PublisherID: "org-manager",
		Type:        entities.PacketNAVUpdate,
		PeriodLabel: "2026-Q2",
		Payload:     json.RawMessage(payload),
		Version:     1,
		PublishedAt: time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestContentHashIgnoresPayloadKeyOrder(t *testing.T) {
	first, err := ContentHash(basePacket(`{"a":1,"b":2}`))
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := ContentHash(basePacket(`{"b":2,"a":1}`))
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first != second {
		t.Fatalf("key order must not change the digest: %s vs %s", first, second)
	}
}

func TestContentHashChangesWithSignedFields(t *testing.T) {
	original, err := ContentHash(basePacket(`{"nav":104.2}`))
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	edited := basePacket(`{"nav":104.2}`)
	edited.PeriodLabel = "2026-Q3"
	changed, err := ContentHash(edited)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if original == changed {
		t.Fatalf("a signed field change must change the digest")
	}

	tampered, err := ContentHash(basePacket(`{"nav":999.9}`))
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if original == tampered {
		t.Fatalf("a payload change must change the digest")
	}
}

func TestVerifyContentHashDetectsTamper(t *testing.T) {
	packet := basePacket(`{"nav":104.2}`)
	hash, err := ContentHash(packet)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	packet.ContentHash = hash

	intact, err := VerifyContentHash(packet)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !intact {
		t.Fatalf("untouched packet must verify")
	}

	packet.Payload = json.RawMessage(`{"nav":999.9}`)
	intact, err = VerifyContentHash(packet)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if intact {
		t.Fatalf("tampered payload must fail verification")
	}
}
