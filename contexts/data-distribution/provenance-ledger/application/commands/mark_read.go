package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "meridian/contexts/data-distribution/provenance-ledger/application"
	"meridian/contexts/data-distribution/provenance-ledger/domain/entities"
	domainerrors "meridian/contexts/data-distribution/provenance-ledger/domain/errors"
	"meridian/contexts/data-distribution/provenance-ledger/ports"
)

// MarkReadCommand records that a reader has seen a packet.
type MarkReadCommand struct {
	ReaderID string
	PacketID string
}

// MarkReadUseCase creates at most one receipt per (reader, packet) pair.
// Re-marking is a no-op, not an error.
type MarkReadUseCase struct {
	Repository ports.Repository
	Authorizer ports.Authorizer
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u MarkReadUseCase) Execute(ctx context.Context, cmd MarkReadCommand) (entities.ReadReceipt, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.ReaderID) == "" {
		return entities.ReadReceipt{}, domainerrors.ErrInvalidReaderID
	}
	packet, err := u.Repository.GetPacket(ctx, cmd.PacketID)
	if err != nil {
		return entities.ReadReceipt{}, err
	}

	decision, err := u.Authorizer.CanViewData(ctx, cmd.ReaderID, packet.AssetID, string(packet.Type))
	if err != nil {
		return entities.ReadReceipt{}, err
	}
	if !decision.Allowed {
		return entities.ReadReceipt{}, fmt.Errorf("%w: %s", domainerrors.ErrPermissionDenied, decision.Reason)
	}

	receipt := entities.ReadReceipt{
		PacketID: packet.PacketID,
		ReaderID: cmd.ReaderID,
		ReadAt:   u.now(),
	}
	created, err := u.Repository.MarkRead(ctx, receipt)
	if err != nil {
		return entities.ReadReceipt{}, err
	}
	if created {
		logger.Info("packet marked read",
			"event", "packet_marked_read",
			"module", "data-distribution/provenance-ledger",
			"layer", "application",
			"packet_id", packet.PacketID,
			"reader_id", cmd.ReaderID,
		)
	}
	return receipt, nil
}

func (u MarkReadUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
