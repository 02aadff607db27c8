package queries

import (
	"context"
	"fmt"

	"meridian/contexts/data-distribution/provenance-ledger/domain/entities"
	domainerrors "meridian/contexts/data-distribution/provenance-ledger/domain/errors"
	"meridian/contexts/data-distribution/provenance-ledger/ports"
)

// ListReceiptsQuery lists who has read one packet.
type ListReceiptsQuery struct {
	ActorID  string
	PacketID string
}

// ListReceiptsUseCase exposes read receipts to actors with publish authority
// over the packet's asset; recipients do not see each other's receipts.
type ListReceiptsUseCase struct {
	Repository ports.Repository
	Authorizer ports.Authorizer
}

func (u ListReceiptsUseCase) Execute(ctx context.Context, query ListReceiptsQuery) ([]entities.ReadReceipt, error) {
	packet, err := u.Repository.GetPacket(ctx, query.PacketID)
	if err != nil {
		return nil, err
	}

	decision, err := u.Authorizer.CanPublish(ctx, query.ActorID, packet.AssetID, string(packet.Type))
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", domainerrors.ErrPermissionDenied, decision.Reason)
	}
	return u.Repository.ListReceipts(ctx, packet.PacketID)
}
