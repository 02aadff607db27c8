package queries

import (
	"context"
	"fmt"

	"meridian/contexts/data-distribution/provenance-ledger/domain/entities"
	domainerrors "meridian/contexts/data-distribution/provenance-ledger/domain/errors"
	"meridian/contexts/data-distribution/provenance-ledger/domain/services"
	"meridian/contexts/data-distribution/provenance-ledger/ports"
)

// GetPacketQuery fetches one packet for a reader.
type GetPacketQuery struct {
	ActorID  string
	PacketID string
}

// GetPacketUseCase authorizes the read and verifies the content hash on the
// way out. A hash mismatch surfaces as an integrity violation, never as an
// ordinary fetch failure.
type GetPacketUseCase struct {
	Repository ports.Repository
	Authorizer ports.Authorizer
}

func (u GetPacketUseCase) Execute(ctx context.Context, query GetPacketQuery) (entities.DataPacket, error) {
	packet, err := u.Repository.GetPacket(ctx, query.PacketID)
	if err != nil {
		return entities.DataPacket{}, err
	}

	decision, err := u.Authorizer.CanViewData(ctx, query.ActorID, packet.AssetID, string(packet.Type))
	if err != nil {
		return entities.DataPacket{}, err
	}
	if !decision.Allowed {
		return entities.DataPacket{}, fmt.Errorf("%w: %s", domainerrors.ErrPermissionDenied, decision.Reason)
	}

	intact, err := services.VerifyContentHash(packet)
	if err != nil {
		return entities.DataPacket{}, err
	}
	if !intact {
		return entities.DataPacket{}, domainerrors.ErrIntegrityViolation
	}
	return packet, nil
}
