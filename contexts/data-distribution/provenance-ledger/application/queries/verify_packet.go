package queries

import (
	"context"

	"meridian/contexts/data-distribution/provenance-ledger/domain/services"
	"meridian/contexts/data-distribution/provenance-ledger/ports"
)

// VerifyPacketQuery recomputes one packet's content hash.
type VerifyPacketQuery struct {
	PacketID string
}

// VerifyPacketUseCase reports whether the stored packet still matches its
// hash. False means the stored fields were altered after publication.
type VerifyPacketUseCase struct {
	Repository ports.Repository
}

func (u VerifyPacketUseCase) Execute(ctx context.Context, query VerifyPacketQuery) (bool, error) {
	packet, err := u.Repository.GetPacket(ctx, query.PacketID)
	if err != nil {
		return false, err
	}
	return services.VerifyContentHash(packet)
}
