package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"meridian/contexts/fund-network/subscription-service/domain/entities"
	domainerrors "meridian/contexts/fund-network/subscription-service/domain/errors"

	"github.com/google/uuid"
)

// Store is an in-memory subscription repository for tests and local wiring.
type Store struct {
	mu            sync.RWMutex
	subscriptions map[string]entities.Subscription
}

func NewStore() *Store {
	return &Store{subscriptions: make(map[string]entities.Subscription)}
}

func (s *Store) CreateSubscription(_ context.Context, subscription entities.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.subscriptions {
		if existing.AssetID == subscription.AssetID && existing.SubscriberID == subscription.SubscriberID {
			return domainerrors.ErrSubscriptionAlreadyExists
		}
	}
	s.subscriptions[subscription.SubscriptionID] = subscription
	return nil
}

func (s *Store) GetSubscription(_ context.Context, subscriptionID string) (entities.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subscription, ok := s.subscriptions[subscriptionID]
	if !ok {
		return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
	}
	return subscription, nil
}

func (s *Store) UpdateSubscription(_ context.Context, subscription entities.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscriptions[subscription.SubscriptionID]; !ok {
		return domainerrors.ErrSubscriptionNotFound
	}
	s.subscriptions[subscription.SubscriptionID] = subscription
	return nil
}

func (s *Store) ListByAsset(_ context.Context, assetID string) ([]entities.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Subscription, 0)
	for _, subscription := range s.subscriptions {
		if subscription.AssetID == assetID {
			items = append(items, subscription)
		}
	}
	sortSubscriptions(items)
	return items, nil
}

func (s *Store) ListBySubscriber(_ context.Context, subscriberID string) ([]entities.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Subscription, 0)
	for _, subscription := range s.subscriptions {
		if subscription.SubscriberID == subscriberID {
			items = append(items, subscription)
		}
	}
	sortSubscriptions(items)
	return items, nil
}

func (s *Store) FindByAssetAndSubscriber(_ context.Context, assetID string, subscriberID string) (entities.Subscription, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, subscription := range s.subscriptions {
		if subscription.AssetID == assetID && subscription.SubscriberID == subscriberID {
			return subscription, true, nil
		}
	}
	return entities.Subscription{}, false, nil
}

// Now implements ports.Clock.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// NewID implements ports.IDGenerator.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func sortSubscriptions(items []entities.Subscription) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
