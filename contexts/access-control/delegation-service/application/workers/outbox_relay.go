package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "meridian/contexts/access-control/delegation-service/application"
	"meridian/contexts/access-control/delegation-service/ports"
)

type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.GrantChangedPublisher
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
		logger.Error("grant outbox list failed",
			"event", "grant_outbox_list_failed",
			"module", "access-control/delegation-service",
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
		if err := r.Publisher.PublishGrantChanged(ctx, event); err != nil {
			logger.Error("grant outbox publish failed",
				"event", "grant_outbox_publish_failed",
				"module", "access-control/delegation-service",
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

func envelopeFromOutbox(row ports.OutboxMessage) (ports.GrantChangedEvent, error) {
	var payload struct {
		GrantID string `json:"grant_id"`
	}
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		return ports.GrantChangedEvent{}, err
	}
	return ports.GrantChangedEvent{
		EventID:          row.OutboxID,
		EventType:        row.EventType,
		OccurredAt:       row.CreatedAt,
		SourceService:    "access-control/delegation-service",
		SchemaVersion:    1,
		PartitionKeyPath: "grant_id",
		PartitionKey:     payload.GrantID,
		Data:             row.Payload,
	}, nil
}
