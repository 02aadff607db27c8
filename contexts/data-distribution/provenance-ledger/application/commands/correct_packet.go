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

// CorrectPacketCommand supersedes an existing packet with a new payload.
type CorrectPacketCommand struct {
	ActorID        string
	PacketID       string
	Payload        json.RawMessage
	CorrectionNote string
}

// CorrectPacketUseCase appends a new packet at version+1 pointing at the
// corrected one. The prior packet is never touched; the (parent, version)
// uniqueness constraint serializes concurrent corrections of the same row.
type CorrectPacketUseCase struct {
	Repository  ports.Repository
	Authorizer  ports.Authorizer
	Audit       ports.AuditRecorder
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u CorrectPacketUseCase) Execute(ctx context.Context, cmd CorrectPacketCommand) (entities.DataPacket, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.DataPacket{}, domainerrors.ErrInvalidPublisherID
	}
	if len(cmd.Payload) == 0 {
		return entities.DataPacket{}, domainerrors.ErrEmptyPayload
	}

	existing, err := u.Repository.GetPacket(ctx, cmd.PacketID)
	if err != nil {
		return entities.DataPacket{}, err
	}

	decision, err := u.Authorizer.CanPublish(ctx, cmd.ActorID, existing.AssetID, string(existing.Type))
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

	parentID := existing.PacketID
	packet := entities.DataPacket{
		PacketID:       packetID,
		AssetID:        existing.AssetID,
		PublisherID:    cmd.ActorID,
		Type:           existing.Type,
		PeriodLabel:    existing.PeriodLabel,
		Payload:        append(json.RawMessage(nil), cmd.Payload...),
		Version:        existing.Version + 1,
		ParentID:       &parentID,
		CorrectionNote: strings.TrimSpace(cmd.CorrectionNote),
		PublishedAt:    u.now(),
	}
	hash, err := services.ContentHash(packet)
	if err != nil {
		return entities.DataPacket{}, err
	}
	packet.ContentHash = hash

	if err := u.Repository.CreatePacket(ctx, ports.CreatePacketInput{Packet: packet, OutboxID: outboxID}); err != nil {
		logger.Error("packet correction write failed",
			"event", "packet_correct_write_failed",
			"module", "data-distribution/provenance-ledger",
			"layer", "application",
			"parent_packet_id", existing.PacketID,
			"error", err.Error(),
		)
		return entities.DataPacket{}, err
	}

	if u.Audit != nil {
		if err := u.Audit.RecordAuditAction(ctx, cmd.ActorID, "packet.corrected", "data_packet", packetID, cmd.ActorID, map[string]string{
			"parent_packet_id": existing.PacketID,
			"version":          fmt.Sprintf("%d", packet.Version),
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

	logger.Info("packet corrected",
		"event", "packet_corrected",
		"module", "data-distribution/provenance-ledger",
		"layer", "application",
		"packet_id", packetID,
		"parent_packet_id", existing.PacketID,
		"version", packet.Version,
	)
	return packet, nil
}

func (u CorrectPacketUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
