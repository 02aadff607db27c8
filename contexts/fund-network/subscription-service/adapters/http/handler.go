package httpadapter

import (
	"context"
	"log/slog"

	application "meridian/contexts/fund-network/subscription-service/application"
	"meridian/contexts/fund-network/subscription-service/application/commands"
	"meridian/contexts/fund-network/subscription-service/application/queries"
	"meridian/contexts/fund-network/subscription-service/domain/entities"
	httptransport "meridian/contexts/fund-network/subscription-service/transport/http"
)

// Handler maps HTTP DTOs to application commands/queries.
type Handler struct {
	Invite  commands.InviteSubscriberUseCase
	Request commands.RequestAccessUseCase
	Respond commands.RespondToSubscriptionUseCase
	List    queries.ListSubscriptionsUseCase
	Logger  *slog.Logger
}

func (h Handler) InviteHandler(ctx context.Context, managerID string, request httptransport.InviteSubscriberRequest) (httptransport.SubscriptionResponse, error) {
	subscription, err := h.Invite.Execute(ctx, commands.InviteSubscriberCommand{
		ManagerID:          managerID,
		AssetID:            request.AssetID,
		SubscriberID:       request.SubscriberID,
		CommitmentAmount:   request.CommitmentAmount,
		CommitmentCurrency: request.CommitmentCurrency,
		AccessLevel:        request.AccessLevel,
	})
	if err != nil {
		return httptransport.SubscriptionResponse{}, err
	}
	return toResponse(subscription), nil
}

func (h Handler) RequestHandler(ctx context.Context, subscriberID string, request httptransport.RequestAccessRequest) (httptransport.SubscriptionResponse, error) {
	subscription, err := h.Request.Execute(ctx, commands.RequestAccessCommand{
		SubscriberID: subscriberID,
		AssetID:      request.AssetID,
		AccessLevel:  request.AccessLevel,
	})
	if err != nil {
		return httptransport.SubscriptionResponse{}, err
	}
	return toResponse(subscription), nil
}

func (h Handler) RespondHandler(ctx context.Context, actorID string, subscriptionID string, request httptransport.RespondRequest) (httptransport.SubscriptionResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	subscription, err := h.Respond.Execute(ctx, commands.RespondToSubscriptionCommand{
		ActorID:        actorID,
		SubscriptionID: subscriptionID,
		Accept:         request.Accept,
	})
	if err != nil {
		logger.Warn("http subscription respond failed",
			"event", "subscription_http_respond_failed",
			"module", "fund-network/subscription-service",
			"layer", "transport",
			"subscription_id", subscriptionID,
			"error", err.Error(),
		)
		return httptransport.SubscriptionResponse{}, err
	}
	return toResponse(subscription), nil
}

func (h Handler) ListHandler(ctx context.Context, assetID string, subscriberID string, activeOnly bool) (httptransport.ListSubscriptionsResponse, error) {
	items, err := h.List.Execute(ctx, queries.ListSubscriptionsQuery{
		AssetID:      assetID,
		SubscriberID: subscriberID,
		ActiveOnly:   activeOnly,
	})
	if err != nil {
		return httptransport.ListSubscriptionsResponse{}, err
	}
	responses := make([]httptransport.SubscriptionResponse, 0, len(items))
	for _, subscription := range items {
		responses = append(responses, toResponse(subscription))
	}
	return httptransport.ListSubscriptionsResponse{Subscriptions: responses}, nil
}

func toResponse(subscription entities.Subscription) httptransport.SubscriptionResponse {
	return httptransport.SubscriptionResponse{
		SubscriptionID:     subscription.SubscriptionID,
		AssetID:            subscription.AssetID,
		SubscriberID:       subscription.SubscriberID,
		Status:             string(subscription.Status),
		CommitmentAmount:   subscription.CommitmentAmount,
		CommitmentCurrency: subscription.CommitmentCurrency,
		AccessLevel:        subscription.AccessLevel,
		CreatedBy:          subscription.CreatedBy,
		CreatedAt:          subscription.CreatedAt,
		RespondedAt:        subscription.RespondedAt,
	}
}
