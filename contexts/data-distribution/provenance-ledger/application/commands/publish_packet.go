package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "meridian/contexts/data-distribution/provenance-ledger/application"
	"meridian/contexts/data-distribution/provenance-ledger/domain/entities"
	domainerrors "meridian/contexts/data-distribution/provenance-ledger/domain/errors"
	"meridian/contexts/data-distribution/provenance-ledger/domain/services"
	"meridian/contexts/data-distribution/provenance-ledger/ports"
)

// PublishPacketCommand contains input for a new version-1 data packet.
type PublishPacketCommand struct {
	PublisherID string
	AssetID     string
	Type        entities.PacketType
	PeriodLabel string
	Payload     json.RawMessage
}

// PublishPacketUseCase authorizes the publisher against the access resolver,
// seals the packet with its content hash and appends it at version 1.
type PublishPacketUseCase struct {
	Repository  ports.Repository
	Authorizer  ports.Authorizer
	Audit       ports.AuditRecorder
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u PublishPacketUseCase) Execute(ctx context.Context, cmd PublishPacketCommand) (entities.DataPacket, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.PublisherID) == "" {
		return entities.DataPacket{}, domainerrors.ErrInvalidPublisherID
	}
	if strings.TrimSpace(cmd.AssetID) == "" {
		return entities.DataPacket{}, domainerrors.ErrInvalidAssetID
	}
	if !cmd.Type.IsValid() {
		return entities.DataPacket{}, domainerrors.ErrInvalidPacketType
	}
	if len(cmd.Payload) == 0 {
		return entities.DataPacket{}, domainerrors.ErrEmptyPayload
	}

	decision, err := u.Authorizer.CanPublish(ctx, cmd.PublisherID, cmd.AssetID, string(cmd.Type))
	if err != nil {
		return entities.DataPacket{}, err
	}
	if !decision.Allowed {
		return entities.DataPacket{}, fmt.Errorf("%w: %s", domainerrors.ErrPermissionDenied, decision.Reason)
	}

	packetID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.DataPacket{}, err
	}
	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.DataPacket{}, err
	}

	packet := entities.DataPacket{
		PacketID:    packetID,
		AssetID:     cmd.AssetID,
		PublisherID: cmd.PublisherID,
		Type:        cmd.Type,
		PeriodLabel: strings.TrimSpace(cmd.PeriodLabel),
		Payload:     append(json.RawMessage(nil), cmd.Payload...),
		Version:     1,
		PublishedAt: u.now(),
	}
	hash, err := services.ContentHash(packet)
	if err != nil {
		return entities.DataPacket{}, err
	}
	packet.ContentHash = hash

	if err := u.Repository.CreatePacket(ctx, ports.CreatePacketInput{Packet: packet, OutboxID: outboxID}); err != nil {
		logger.Error("packet publish write failed",
			"event", "packet_publish_write_failed",
			"module", "data-distribution/provenance-ledger",
			"layer", "application",
			"asset_id", cmd.AssetID,
			"publisher_id", cmd.PublisherID,
			"error", err.Error(),
		)
		return entities.DataPacket{}, err
	}

	if u.Audit != nil {
		if err := u.Audit.RecordAuditAction(ctx, cmd.PublisherID, "packet.published", "data_packet", packetID, cmd.PublisherID, map[string]string{
			"asset_id": cmd.AssetID,
			"type":     string(cmd.Type),
		}); err != nil {
			logger.Warn("audit record failed",
				"event", "packet_audit_failed",
				"module", "data-distribution/provenance-ledger",
				"layer", "application",
				"packet_id", packetID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("packet published",
		"event", "packet_published",
		"module", "data-distribution/provenance-ledger",
		"layer", "application",
		"packet_id", packetID,
		"asset_id", cmd.AssetID,
		"type", string(cmd.Type),
	)
	return packet, nil
}

func (u PublishPacketUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
