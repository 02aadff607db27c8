package httpadapter

import (
	"context"
	"log/slog"

	"meridian/contexts/access-control/access-resolver/application/queries"
	"meridian/contexts/access-control/access-resolver/domain/entities"
	httptransport "meridian/contexts/access-control/access-resolver/transport/http"
)

// Handler maps HTTP DTOs to application queries.
type Handler struct {
	Check       queries.CanPerformUseCase
	Subscribers queries.VisibleSubscribersUseCase
	Logger      *slog.Logger
}

func (h Handler) CheckHandler(ctx context.Context, actorID string, assetID string, typeTag string, action string) (httptransport.CheckAccessResponse, error) {
	decision, err := h.Check.Execute(ctx, queries.CanPerformQuery{
		ActorID: actorID,
		AssetID: assetID,
		TypeTag: typeTag,
		Action:  entities.Action(action),
	})
	if err != nil {
		return httptransport.CheckAccessResponse{}, err
	}
	return httptransport.CheckAccessResponse{
		Allowed:   decision.Allowed,
		Reason:    decision.Reason,
		CheckedAt: decision.CheckedAt,
	}, nil
}

func (h Handler) SubscribersHandler(ctx context.Context, actorID string, assetID string) (httptransport.VisibleSubscribersResponse, error) {
	subscribers, err := h.Subscribers.Execute(ctx, queries.VisibleSubscribersQuery{
		ActorID: actorID,
		AssetID: assetID,
	})
	if err != nil {
		return httptransport.VisibleSubscribersResponse{}, err
	}
	return httptransport.VisibleSubscribersResponse{
		AssetID:     assetID,
		Subscribers: subscribers,
	}, nil
}
