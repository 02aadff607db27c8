package postgresadapter

import (
	"context"
	"errors"
	"strings"
	"time"

	"meridian/contexts/fund-network/subscription-service/domain/entities"
	domainerrors "meridian/contexts/fund-network/subscription-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the gorm-backed subscription adapter.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type subscriptionModel struct {
	SubscriptionID     string     `gorm:"column:subscription_id;primaryKey"`
	AssetID            string     `gorm:"column:asset_id;index;uniqueIndex:idx_subscription_pair"`
	SubscriberID       string     `gorm:"column:subscriber_id;index;uniqueIndex:idx_subscription_pair"`
	Status             string     `gorm:"column:status"`
	CommitmentAmount   *float64   `gorm:"column:commitment_amount"`
	CommitmentCurrency string     `gorm:"column:commitment_currency"`
	AccessLevel        string     `gorm:"column:access_level"`
	CreatedBy          string     `gorm:"column:created_by"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	RespondedAt        *time.Time `gorm:"column:responded_at"`
}

func (subscriptionModel) TableName() string { return "subscriptions" }

func modelFromEntity(subscription entities.Subscription) subscriptionModel {
	return subscriptionModel{
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

func (m subscriptionModel) toEntity() entities.Subscription {
	return entities.Subscription{
		SubscriptionID:     m.SubscriptionID,
		AssetID:            m.AssetID,
		SubscriberID:       m.SubscriberID,
		Status:             entities.SubscriptionStatus(m.Status),
		CommitmentAmount:   m.CommitmentAmount,
		CommitmentCurrency: m.CommitmentCurrency,
		AccessLevel:        m.AccessLevel,
		CreatedBy:          m.CreatedBy,
		CreatedAt:          m.CreatedAt,
		RespondedAt:        m.RespondedAt,
	}
}

func (r *Repository) CreateSubscription(ctx context.Context, subscription entities.Subscription) error {
	row := modelFromEntity(subscription)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrSubscriptionAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetSubscription(ctx context.Context, subscriptionID string) (entities.Subscription, error) {
	var row subscriptionModel
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", strings.TrimSpace(subscriptionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
		}
		return entities.Subscription{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateSubscription(ctx context.Context, subscription entities.Subscription) error {
	result := r.db.WithContext(ctx).
		Model(&subscriptionModel{}).
		Where("subscription_id = ?", subscription.SubscriptionID).
		Updates(map[string]any{
			"status":       string(subscription.Status),
			"responded_at": subscription.RespondedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSubscriptionNotFound
	}
	return nil
}

func (r *Repository) ListByAsset(ctx context.Context, assetID string) ([]entities.Subscription, error) {
	var rows []subscriptionModel
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", strings.TrimSpace(assetID)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) ListBySubscriber(ctx context.Context, subscriberID string) ([]entities.Subscription, error) {
	var rows []subscriptionModel
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ?", strings.TrimSpace(subscriberID)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) FindByAssetAndSubscriber(ctx context.Context, assetID string, subscriberID string) (entities.Subscription, bool, error) {
	var row subscriptionModel
	err := r.db.WithContext(ctx).
		Where("asset_id = ? AND subscriber_id = ?", strings.TrimSpace(assetID), strings.TrimSpace(subscriberID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Subscription{}, false, nil
		}
		return entities.Subscription{}, false, err
	}
	return row.toEntity(), true, nil
}

func toEntities(rows []subscriptionModel) []entities.Subscription {
	items := make([]entities.Subscription, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
