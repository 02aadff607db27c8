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

// RequestAccessCommand is issued by a would-be subscriber.
type RequestAccessCommand struct {
	SubscriberID string
	AssetID      string
	AccessLevel  string
}

// RequestAccessUseCase creates a pending-request subscription awaiting the
// manager's approval.
type RequestAccessUseCase struct {
	Repository  ports.Repository
	Directory   ports.AssetDirectory
	Audit       ports.AuditRecorder
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u RequestAccessUseCase) Execute(ctx context.Context, cmd RequestAccessCommand) (entities.Subscription, error) {
	if strings.TrimSpace(cmd.SubscriberID) == "" {
		return entities.Subscription{}, domainerrors.ErrInvalidSubscriberID
	}
	if strings.TrimSpace(cmd.AssetID) == "" {
		return entities.Subscription{}, domainerrors.ErrInvalidAssetID
	}

	logger := application.ResolveLogger(u.Logger)

	_, found, err := u.Directory.GetAsset(ctx, cmd.AssetID)
	if err != nil {
		return entities.Subscription{}, err
	}
	if !found {
		return entities.Subscription{}, domainerrors.ErrAssetNotFound
	}

	if _, exists, err := u.Repository.FindByAssetAndSubscriber(ctx, cmd.AssetID, cmd.SubscriberID); err != nil {
		return entities.Subscription{}, err
	} else if exists {
		return entities.Subscription{}, domainerrors.ErrSubscriptionAlreadyExists
	}

	subscriptionID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Subscription{}, err
	}

	subscription := entities.Subscription{
		SubscriptionID: subscriptionID,
		AssetID:        cmd.AssetID,
		SubscriberID:   cmd.SubscriberID,
		Status:         entities.SubscriptionPendingRequest,
		AccessLevel:    cmd.AccessLevel,
		CreatedBy:      cmd.SubscriberID,
		CreatedAt:      u.now(),
	}
	if err := u.Repository.CreateSubscription(ctx, subscription); err != nil {
		return entities.Subscription{}, err
	}

	if u.Audit != nil {
		if err := u.Audit.RecordAuditAction(ctx, cmd.SubscriberID, "subscription.requested", "subscription", subscriptionID, cmd.SubscriberID, map[string]string{
			"asset_id": cmd.AssetID,
		}); err != nil {
			logger.Warn("audit record failed",
				"event", "subscription_audit_failed",
				"module", "fund-network/subscription-service",
				"layer", "application",
				"subscription_id", subscriptionID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("access requested",
		"event", "subscription_requested",
		"module", "fund-network/subscription-service",
		"layer", "application",
		"subscription_id", subscriptionID,
		"asset_id", cmd.AssetID,
		"subscriber_id", cmd.SubscriberID,
	)
	return subscription, nil
}

func (u RequestAccessUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
