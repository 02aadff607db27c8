package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"meridian/contexts/access-control/delegation-service/domain/entities"
	domainerrors "meridian/contexts/access-control/delegation-service/domain/errors"
	"meridian/contexts/access-control/delegation-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateGrant(ctx context.Context, input ports.CreateGrantInput) error {
	row, err := grantModelFromEntity(input.Grant)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrGrantConcurrentUpdate
			}
			return err
		}
		return insertOutboxTx(tx, input.OutboxID, map[string]string{
			"grant_id":    input.Grant.GrantID,
			"action_type": "grant_created",
			"status":      string(input.Grant.Status),
		}, input.Grant.CreatedAt)
	})
}

func (r *Repository) GetGrant(ctx context.Context, grantID string) (entities.AccessGrant, error) {
	var row grantModel
	err := r.db.WithContext(ctx).
		Where("grant_id = ?", strings.TrimSpace(grantID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.AccessGrant{}, domainerrors.ErrGrantNotFound
		}
		return entities.AccessGrant{}, err
	}
	return row.toEntity()
}

// TransitionGrant relies on a conditional UPDATE keyed by the expected current
// status, so two concurrent deciders cannot both win the same transition.
func (r *Repository) TransitionGrant(ctx context.Context, input ports.GrantTransitionInput) (entities.AccessGrant, error) {
	at := input.At.UTC()
	updates := map[string]any{
		"status": string(input.To),
	}
	switch input.To {
	case entities.GrantActive:
		updates["approved_by"] = strings.TrimSpace(input.ActorID)
		updates["approved_at"] = at
	case entities.GrantRevoked:
		updates["revoked_at"] = at
	}

	var updated entities.AccessGrant
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&grantModel{}).
			Where("grant_id = ? AND status = ?", strings.TrimSpace(input.GrantID), string(input.From)).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&grantModel{}).
				Where("grant_id = ?", strings.TrimSpace(input.GrantID)).
				Count(&exists).
				Error; err != nil {
				return err
			}
			if exists == 0 {
				return domainerrors.ErrGrantNotFound
			}
			return domainerrors.ErrInvalidTransition
		}

		var row grantModel
		if err := tx.Where("grant_id = ?", strings.TrimSpace(input.GrantID)).First(&row).Error; err != nil {
			return err
		}
		entity, err := row.toEntity()
		if err != nil {
			return err
		}
		updated = entity

		return insertOutboxTx(tx, input.OutboxID, map[string]string{
			"grant_id":    updated.GrantID,
			"action_type": "grant_" + string(input.To),
			"status":      string(updated.Status),
		}, at)
	})
	if err != nil {
		return entities.AccessGrant{}, err
	}
	return updated, nil
}

func (r *Repository) GrantsFor(ctx context.Context, granteeID string) ([]entities.AccessGrant, error) {
	return r.listGrants(ctx, "grantee_id = ?", granteeID)
}

func (r *Repository) GrantsBy(ctx context.Context, grantorID string) ([]entities.AccessGrant, error) {
	return r.listGrants(ctx, "grantor_id = ?", grantorID)
}

func (r *Repository) listGrants(ctx context.Context, condition string, value string) ([]entities.AccessGrant, error) {
	var rows []grantModel
	if err := r.db.WithContext(ctx).
		Where(condition, strings.TrimSpace(value)).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.AccessGrant, 0, len(rows))
	for _, row := range rows {
		entity, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, entity)
	}
	return items, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   append([]byte(nil), row.Payload...),
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrGrantNotFound
	}
	return nil
}

func insertOutboxTx(tx *gorm.DB, outboxID string, payload map[string]string, at time.Time) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:  strings.TrimSpace(outboxID),
		EventType: "grants.changed",
		Payload:   encoded,
		Status:    outboxStatusPending,
		CreatedAt: at.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return tx.Create(&row).Error
}

type grantModel struct {
	GrantID      string     `gorm:"column:grant_id;primaryKey"`
	GrantorID    string     `gorm:"column:grantor_id;index"`
	GranteeID    string     `gorm:"column:grantee_id;index"`
	AssetScope   []byte     `gorm:"column:asset_scope;type:jsonb"`
	TypeScope    []byte     `gorm:"column:type_scope;type:jsonb"`
	Capabilities []byte     `gorm:"column:capabilities;type:jsonb"`
	Status       string     `gorm:"column:status"`
	ValidFrom    time.Time  `gorm:"column:valid_from"`
	ExpiresAt    *time.Time `gorm:"column:expires_at"`
	ApprovedBy   *string    `gorm:"column:approved_by"`
	ApprovedAt   *time.Time `gorm:"column:approved_at"`
	RevokedAt    *time.Time `gorm:"column:revoked_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (grantModel) TableName() string {
	return "access_grants"
}

func grantModelFromEntity(item entities.AccessGrant) (grantModel, error) {
	assetScope, err := json.Marshal(item.AssetScope)
	if err != nil {
		return grantModel{}, err
	}
	typeScope, err := json.Marshal(item.TypeScope)
	if err != nil {
		return grantModel{}, err
	}
	capabilities, err := json.Marshal(item.Capabilities)
	if err != nil {
		return grantModel{}, err
	}
	return grantModel{
		GrantID:      strings.TrimSpace(item.GrantID),
		GrantorID:    strings.TrimSpace(item.GrantorID),
		GranteeID:    strings.TrimSpace(item.GranteeID),
		AssetScope:   assetScope,
		TypeScope:    typeScope,
		Capabilities: capabilities,
		Status:       string(item.Status),
		ValidFrom:    item.ValidFrom.UTC(),
		ExpiresAt:    normalizeOptionalTime(item.ExpiresAt),
		ApprovedBy:   item.ApprovedBy,
		ApprovedAt:   normalizeOptionalTime(item.ApprovedAt),
		RevokedAt:    normalizeOptionalTime(item.RevokedAt),
		CreatedAt:    item.CreatedAt.UTC(),
	}, nil
}

func (m grantModel) toEntity() (entities.AccessGrant, error) {
	var assetScope entities.Scope
	if err := json.Unmarshal(m.AssetScope, &assetScope); err != nil {
		return entities.AccessGrant{}, err
	}
	var typeScope entities.Scope
	if err := json.Unmarshal(m.TypeScope, &typeScope); err != nil {
		return entities.AccessGrant{}, err
	}
	var capabilities entities.Capabilities
	if err := json.Unmarshal(m.Capabilities, &capabilities); err != nil {
		return entities.AccessGrant{}, err
	}
	return entities.AccessGrant{
		GrantID:      m.GrantID,
		GrantorID:    m.GrantorID,
		GranteeID:    m.GranteeID,
		AssetScope:   assetScope,
		TypeScope:    typeScope,
		Capabilities: capabilities,
		Status:       entities.GrantStatus(m.Status),
		ValidFrom:    m.ValidFrom.UTC(),
		ExpiresAt:    normalizeOptionalTime(m.ExpiresAt),
		ApprovedBy:   m.ApprovedBy,
		ApprovedAt:   normalizeOptionalTime(m.ApprovedAt),
		RevokedAt:    normalizeOptionalTime(m.RevokedAt),
		CreatedAt:    m.CreatedAt.UTC(),
	}, nil
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "access_grant_outbox"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
