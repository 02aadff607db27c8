package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "meridian/contexts/data-distribution/provenance-ledger/application"
	"meridian/contexts/data-distribution/provenance-ledger/ports"
)

type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.PacketEventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("packet outbox list failed",
			"event", "packet_outbox_list_failed",
			"module", "data-distribution/provenance-ledger",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		event, err := envelopeFromOutbox(row)
		if err != nil {
			return err
		}
		if err := r.Publisher.PublishPacketEvent(ctx, event); err != nil {
			logger.Error("packet outbox publish failed",
				"event", "packet_outbox_publish_failed",
				"module", "data-distribution/provenance-ledger",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			return err
		}
	}
	return nil
}

func envelopeFromOutbox(row ports.OutboxMessage) (ports.PacketPublishedEvent, error) {
	var payload struct {
		PacketID string `json:"packet_id"`
	}
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		return ports.PacketPublishedEvent{}, err
	}
	return ports.PacketPublishedEvent{
		EventID:          row.OutboxID,
		EventType:        row.EventType,
		OccurredAt:       row.CreatedAt,
		SourceService:    "data-distribution/provenance-ledger",
		SchemaVersion:    1,
		PartitionKeyPath: "packet_id",
		PartitionKey:     payload.PacketID,
		Data:             row.Payload,
	}, nil
}
