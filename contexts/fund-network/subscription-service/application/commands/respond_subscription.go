package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "meridian/contexts/fund-network/subscription-service/application"
	"meridian/contexts/fund-network/subscription-service/domain/entities"
	domainerrors "meridian/contexts/fund-network/subscription-service/domain/errors"
	"meridian/contexts/fund-network/subscription-service/ports"
)

// RespondToSubscriptionCommand accepts or declines a pending subscription.
type RespondToSubscriptionCommand struct {
	ActorID        string
	SubscriptionID string
	Accept         bool
}

// RespondToSubscriptionUseCase applies the counterparty response: the
// subscriber answers an invitation, the asset's manager answers a request.
type RespondToSubscriptionUseCase struct {
	Repository ports.Repository
	Directory  ports.AssetDirectory
	Audit      ports.AuditRecorder
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u RespondToSubscriptionUseCase) Execute(ctx context.Context, cmd RespondToSubscriptionCommand) (entities.Subscription, error) {
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Subscription{}, domainerrors.ErrInvalidActorID
	}
	if strings.TrimSpace(cmd.SubscriptionID) == "" {
		return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
	}

	logger := application.ResolveLogger(u.Logger)

	subscription, err := u.Repository.GetSubscription(ctx, cmd.SubscriptionID)
	if err != nil {
		return entities.Subscription{}, err
	}
	if !subscription.IsPending() {
		return entities.Subscription{}, domainerrors.ErrInvalidTransition
	}

	switch subscription.Status {
	case entities.SubscriptionPendingInvitation:
		if cmd.ActorID != subscription.SubscriberID {
			return entities.Subscription{}, domainerrors.ErrNotCounterparty
		}
	case entities.SubscriptionPendingRequest:
		asset, found, err := u.Directory.GetAsset(ctx, subscription.AssetID)
		if err != nil {
			return entities.Subscription{}, err
		}
		if !found {
			return entities.Subscription{}, domainerrors.ErrAssetNotFound
		}
		if asset.ManagerID != cmd.ActorID {
			return entities.Subscription{}, domainerrors.ErrNotCounterparty
		}
	}

	now := u.now()
	if cmd.Accept {
		subscription.Status = entities.SubscriptionActive
	} else {
		subscription.Status = entities.SubscriptionDeclined
	}
	subscription.RespondedAt = &now

	if err := u.Repository.UpdateSubscription(ctx, subscription); err != nil {
		return entities.Subscription{}, err
	}

	action := "subscription.declined"
	if cmd.Accept {
		action = "subscription.accepted"
	}
	if u.Audit != nil {
		if err := u.Audit.RecordAuditAction(ctx, cmd.ActorID, action, "subscription", subscription.SubscriptionID, subscription.SubscriberID, map[string]string{
			"asset_id": subscription.AssetID,
		}); err != nil {
			logger.Warn("audit record failed",
				"event", "subscription_audit_failed",
				"module", "fund-network/subscription-service",
				"layer", "application",
				"subscription_id", subscription.SubscriptionID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("subscription responded",
		"event", "subscription_responded",
		"module", "fund-network/subscription-service",
		"layer", "application",
		"subscription_id", subscription.SubscriptionID,
		"status", string(subscription.Status),
	)
	return subscription, nil
}

func (u RespondToSubscriptionUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
