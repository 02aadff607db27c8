package httpadapter

import (
	"context"
	"log/slog"

	application "meridian/contexts/data-distribution/provenance-ledger/application"
	"meridian/contexts/data-distribution/provenance-ledger/application/commands"
	"meridian/contexts/data-distribution/provenance-ledger/application/queries"
	"meridian/contexts/data-distribution/provenance-ledger/domain/entities"
	httptransport "meridian/contexts/data-distribution/provenance-ledger/transport/http"
)

// Handler maps HTTP DTOs to application commands/queries.
type Handler struct {
	Publish  commands.PublishPacketUseCase
	Correct  commands.CorrectPacketUseCase
	MarkRead commands.MarkReadUseCase
	Get      queries.GetPacketUseCase
	List     queries.ListPacketsUseCase
	Verify   queries.VerifyPacketUseCase
	Receipts queries.ListReceiptsUseCase
	Logger   *slog.Logger
}

func (h Handler) PublishHandler(ctx context.Context, publisherID string, request httptransport.PublishPacketRequest) (httptransport.PacketResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	packet, err := h.Publish.Execute(ctx, commands.PublishPacketCommand{
		PublisherID: publisherID,
		AssetID:     request.AssetID,
		Type:        entities.PacketType(request.Type),
		PeriodLabel: request.PeriodLabel,
		Payload:     request.Payload,
	})
	if err != nil {
		logger.Warn("http packet publish failed",
			"event", "packet_http_publish_failed",
			"module", "data-distribution/provenance-ledger",
			"layer", "transport",
			"asset_id", request.AssetID,
			"error", err.Error(),
		)
		return httptransport.PacketResponse{}, err
	}
	return toResponse(packet), nil
}

func (h Handler) CorrectHandler(ctx context.Context, actorID string, packetID string, request httptransport.CorrectPacketRequest) (httptransport.PacketResponse, error) {
	packet, err := h.Correct.Execute(ctx, commands.CorrectPacketCommand{
		ActorID:        actorID,
		PacketID:       packetID,
		Payload:        request.Payload,
		CorrectionNote: request.CorrectionNote,
	})
	if err != nil {
		return httptransport.PacketResponse{}, err
	}
	return toResponse(packet), nil
}

func (h Handler) MarkReadHandler(ctx context.Context, readerID string, packetID string) (httptransport.ReadReceiptResponse, error) {
	receipt, err := h.MarkRead.Execute(ctx, commands.MarkReadCommand{
		ReaderID: readerID,
		PacketID: packetID,
	})
	if err != nil {
		return httptransport.ReadReceiptResponse{}, err
	}
	return httptransport.ReadReceiptResponse{
		PacketID: receipt.PacketID,
		ReaderID: receipt.ReaderID,
		ReadAt:   receipt.ReadAt,
	}, nil
}

func (h Handler) GetHandler(ctx context.Context, actorID string, packetID string) (httptransport.PacketResponse, error) {
	packet, err := h.Get.Execute(ctx, queries.GetPacketQuery{
		ActorID:  actorID,
		PacketID: packetID,
	})
	if err != nil {
		return httptransport.PacketResponse{}, err
	}
	return toResponse(packet), nil
}

func (h Handler) ListHandler(ctx context.Context, actorID string, assetID string, packetType string, correctionsOnly bool, unreadOnly bool) (httptransport.ListPacketsResponse, error) {
	items, err := h.List.Execute(ctx, queries.ListPacketsQuery{
		ActorID:         actorID,
		AssetID:         assetID,
		Type:            entities.PacketType(packetType),
		CorrectionsOnly: correctionsOnly,
		UnreadOnly:      unreadOnly,
	})
	if err != nil {
		return httptransport.ListPacketsResponse{}, err
	}
	responses := make([]httptransport.PacketResponse, 0, len(items))
	for _, packet := range items {
		responses = append(responses, toResponse(packet))
	}
	return httptransport.ListPacketsResponse{Packets: responses}, nil
}

func (h Handler) VerifyHandler(ctx context.Context, packetID string) (httptransport.VerifyPacketResponse, error) {
	intact, err := h.Verify.Execute(ctx, queries.VerifyPacketQuery{PacketID: packetID})
	if err != nil {
		return httptransport.VerifyPacketResponse{}, err
	}
	return httptransport.VerifyPacketResponse{
		PacketID: packetID,
		Intact:   intact,
	}, nil
}

func (h Handler) ReceiptsHandler(ctx context.Context, actorID string, packetID string) (httptransport.ListReceiptsResponse, error) {
	items, err := h.Receipts.Execute(ctx, queries.ListReceiptsQuery{
		ActorID:  actorID,
		PacketID: packetID,
	})
	if err != nil {
		return httptransport.ListReceiptsResponse{}, err
	}
	responses := make([]httptransport.ReadReceiptResponse, 0, len(items))
	for _, receipt := range items {
		responses = append(responses, httptransport.ReadReceiptResponse{
			PacketID: receipt.PacketID,
			ReaderID: receipt.ReaderID,
			ReadAt:   receipt.ReadAt,
		})
	}
	return httptransport.ListReceiptsResponse{Receipts: responses}, nil
}

func toResponse(packet entities.DataPacket) httptransport.PacketResponse {
	return httptransport.PacketResponse{
		PacketID:       packet.PacketID,
		AssetID:        packet.AssetID,
		PublisherID:    packet.PublisherID,
		Type:           string(packet.Type),
		PeriodLabel:    packet.PeriodLabel,
		Payload:        packet.Payload,
		ContentHash:    packet.ContentHash,
		Version:        packet.Version,
		ParentID:       packet.ParentID,
		CorrectionNote: packet.CorrectionNote,
		PublishedAt:    packet.PublishedAt,
	}
}
