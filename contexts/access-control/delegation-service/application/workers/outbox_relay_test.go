package workers

import (
	"context"
	"testing"
	"time"

	"meridian/contexts/access-control/delegation-service/adapters/memory"
	"meridian/contexts/access-control/delegation-service/domain/entities"
	"meridian/contexts/access-control/delegation-service/ports"
)

type capturePublisher struct {
	events []ports.GrantChangedEvent
}

func (p *capturePublisher) PublishGrantChanged(_ context.Context, event ports.GrantChangedEvent) error {
	p.events = append(p.events, event)
	return nil
}

func TestOutboxRelayPublishesOnce(t *testing.T) {
	store := memory.NewStore()
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

	publisher := &capturePublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}

	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.EventType != "grants.changed" || event.PartitionKey != "grant-1" {
		t.Fatalf("unexpected envelope %+v", event)
	}

	// Acked rows are not re-published.
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("relay must not republish acked rows, got %d events", len(publisher.events))
	}
}
