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

// InviteSubscriberCommand is issued by an asset's manager.
type InviteSubscriberCommand struct {
	ManagerID          string
	AssetID            string
	SubscriberID       string
	CommitmentAmount   *float64
	CommitmentCurrency string
	AccessLevel        string
}

// InviteSubscriberUseCase creates a pending-invitation subscription.
type InviteSubscriberUseCase struct {
	Repository  ports.Repository
	Directory   ports.AssetDirectory
	Audit       ports.AuditRecorder
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u InviteSubscriberUseCase) Execute(ctx context.Context, cmd InviteSubscriberCommand) (entities.Subscription, error) {
	if strings.TrimSpace(cmd.ManagerID) == "" {
		return entities.Subscription{}, domainerrors.ErrInvalidActorID
	}
	if strings.TrimSpace(cmd.AssetID) == "" {
		return entities.Subscription{}, domainerrors.ErrInvalidAssetID
	}
	if strings.TrimSpace(cmd.SubscriberID) == "" {
		return entities.Subscription{}, domainerrors.ErrInvalidSubscriberID
	}

	logger := application.ResolveLogger(u.Logger)

	asset, found, err := u.Directory.GetAsset(ctx, cmd.AssetID)
	if err != nil {
		return entities.Subscription{}, err
	}
	if !found {
		return entities.Subscription{}, domainerrors.ErrAssetNotFound
	}
	if asset.ManagerID != cmd.ManagerID {
		return entities.Subscription{}, domainerrors.ErrNotAssetManager
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
		SubscriptionID:     subscriptionID,
		AssetID:            cmd.AssetID,
		SubscriberID:       cmd.SubscriberID,
		Status:             entities.SubscriptionPendingInvitation,
		CommitmentAmount:   cmd.CommitmentAmount,
		CommitmentCurrency: cmd.CommitmentCurrency,
		AccessLevel:        cmd.AccessLevel,
		CreatedBy:          cmd.ManagerID,
		CreatedAt:          u.now(),
	}
	if err := u.Repository.CreateSubscription(ctx, subscription); err != nil {
		return entities.Subscription{}, err
	}

	if u.Audit != nil {
		if err := u.Audit.RecordAuditAction(ctx, cmd.ManagerID, "subscription.invited", "subscription", subscriptionID, cmd.SubscriberID, map[string]string{
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

	logger.Info("subscriber invited",
		"event", "subscription_invited",
		"module", "fund-network/subscription-service",
		"layer", "application",
		"subscription_id", subscriptionID,
		"asset_id", cmd.AssetID,
		"subscriber_id", cmd.SubscriberID,
	)
	return subscription, nil
}

func (u InviteSubscriberUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
