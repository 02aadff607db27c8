package queries

import (
	"context"

	"meridian/contexts/data-distribution/provenance-ledger/domain/entities"
	"meridian/contexts/data-distribution/provenance-ledger/ports"
)

// ListPacketsQuery lists packets of one asset, optionally narrowed to a type,
// to corrections only, or to packets the actor has not yet marked read.
type ListPacketsQuery struct {
	ActorID         string
	AssetID         string
	Type            entities.PacketType
	CorrectionsOnly bool
	UnreadOnly      bool
}

// ListPacketsUseCase filters to what the actor may view. A denied actor gets
// an empty list, not an error; listing is a visibility filter, not a gate.
type ListPacketsUseCase struct {
	Repository ports.Repository
	Authorizer ports.Authorizer
}

func (u ListPacketsUseCase) Execute(ctx context.Context, query ListPacketsQuery) ([]entities.DataPacket, error) {
	filter := ports.PacketFilter{
		AssetID:         query.AssetID,
		Type:            query.Type,
		CorrectionsOnly: query.CorrectionsOnly,
	}
	if query.UnreadOnly {
		filter.UnreadFor = query.ActorID
	}
	items, err := u.Repository.ListPackets(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Per-packet screening keeps type-scoped grants exact: an actor delegated
	// only tax documents must not see capital calls on the same asset.
	visible := make([]entities.DataPacket, 0, len(items))
	for _, packet := range items {
		decision, err := u.Authorizer.CanViewData(ctx, query.ActorID, packet.AssetID, string(packet.Type))
		if err != nil {
			return nil, err
		}
		if decision.Allowed {
			visible = append(visible, packet)
		}
	}
	return visible, nil
}
