package queries

import (
	"context"
	"strings"

	"meridian/contexts/fund-network/subscription-service/domain/entities"
	domainerrors "meridian/contexts/fund-network/subscription-service/domain/errors"
	"meridian/contexts/fund-network/subscription-service/ports"
)

// ListSubscriptionsQuery narrows the listing to one asset or one subscriber.
type ListSubscriptionsQuery struct {
	AssetID      string
	SubscriberID string
	ActiveOnly   bool
}

// ListSubscriptionsUseCase lists subscriptions for an asset or a subscriber.
type ListSubscriptionsUseCase struct {
	Repository ports.Repository
}

func (u ListSubscriptionsUseCase) Execute(ctx context.Context, query ListSubscriptionsQuery) ([]entities.Subscription, error) {
	var (
		items []entities.Subscription
		err   error
	)
	switch {
	case strings.TrimSpace(query.AssetID) != "":
		items, err = u.Repository.ListByAsset(ctx, query.AssetID)
	case strings.TrimSpace(query.SubscriberID) != "":
		items, err = u.Repository.ListBySubscriber(ctx, query.SubscriberID)
	default:
		return nil, domainerrors.ErrInvalidAssetID
	}
	if err != nil {
		return nil, err
	}
	if !query.ActiveOnly {
		return items, nil
	}
	active := make([]entities.Subscription, 0, len(items))
	for _, subscription := range items {
		if subscription.Status == entities.SubscriptionActive {
			active = append(active, subscription)
		}
	}
	return active, nil
}
