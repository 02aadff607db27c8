package postgresadapter

import (
	"context"
	"errors"
	"strings"
	"time"

	"meridian/contexts/fund-network/directory-service/domain/entities"
	domainerrors "meridian/contexts/fund-network/directory-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the gorm-backed directory adapter.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type organizationModel struct {
	OrganizationID string    `gorm:"column:organization_id;primaryKey"`
	Name           string    `gorm:"column:name"`
	Kind           string    `gorm:"column:kind"`
	IsActive       bool      `gorm:"column:is_active"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (organizationModel) TableName() string { return "organizations" }

type assetModel struct {
	AssetID         string    `gorm:"column:asset_id;primaryKey"`
	Name            string    `gorm:"column:name"`
	Kind            string    `gorm:"column:kind"`
	ManagerID       string    `gorm:"column:manager_id;index"`
	ParentID        *string   `gorm:"column:parent_id"`
	RequireApproval bool      `gorm:"column:require_manager_approval"`
	IsActive        bool      `gorm:"column:is_active"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (assetModel) TableName() string { return "assets" }

func (m organizationModel) toEntity() entities.Organization {
	return entities.Organization{
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Kind:           entities.OrganizationKind(m.Kind),
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
	}
}

func (m assetModel) toEntity() entities.Asset {
	return entities.Asset{
		AssetID:                              m.AssetID,
		Name:                                 m.Name,
		Kind:                                 entities.AssetKind(m.Kind),
		ManagerID:                            m.ManagerID,
		ParentID:                             m.ParentID,
		RequireManagerApprovalForDelegations: m.RequireApproval,
		IsActive:                             m.IsActive,
		CreatedAt:                            m.CreatedAt,
	}
}

func (r *Repository) CreateOrganization(ctx context.Context, organization entities.Organization) error {
	row := organizationModel{
		OrganizationID: strings.TrimSpace(organization.OrganizationID),
		Name:           organization.Name,
		Kind:           string(organization.Kind),
		IsActive:       true,
		CreatedAt:      organization.CreatedAt,
	}
	if row.OrganizationID == "" {
		return domainerrors.ErrInvalidOrganizationID
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrOrganizationAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) CreateAsset(ctx context.Context, asset entities.Asset) error {
	row := assetModel{
		AssetID:         strings.TrimSpace(asset.AssetID),
		Name:            asset.Name,
		Kind:            string(asset.Kind),
		ManagerID:       asset.ManagerID,
		ParentID:        asset.ParentID,
		RequireApproval: asset.RequireManagerApprovalForDelegations,
		IsActive:        true,
		CreatedAt:       asset.CreatedAt,
	}
	if row.AssetID == "" {
		return domainerrors.ErrInvalidAssetID
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAssetAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) DeactivateOrganization(ctx context.Context, organizationID string) error {
	result := r.db.WithContext(ctx).
		Model(&organizationModel{}).
		Where("organization_id = ?", strings.TrimSpace(organizationID)).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOrganizationNotFound
	}
	return nil
}

func (r *Repository) DeactivateAsset(ctx context.Context, assetID string) error {
	result := r.db.WithContext(ctx).
		Model(&assetModel{}).
		Where("asset_id = ?", strings.TrimSpace(assetID)).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAssetNotFound
	}
	return nil
}

func (r *Repository) GetOrganization(ctx context.Context, organizationID string) (entities.Organization, error) {
	var row organizationModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", strings.TrimSpace(organizationID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Organization{}, domainerrors.ErrOrganizationNotFound
		}
		return entities.Organization{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetAsset(ctx context.Context, assetID string) (entities.Asset, error) {
	var row assetModel
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", strings.TrimSpace(assetID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Asset{}, domainerrors.ErrAssetNotFound
		}
		return entities.Asset{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListAssetsManagedBy(ctx context.Context, organizationID string) ([]entities.Asset, error) {
	var rows []assetModel
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", strings.TrimSpace(organizationID)).
		Order("asset_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Asset, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListAssets(ctx context.Context) ([]entities.Asset, error) {
	var rows []assetModel
	if err := r.db.WithContext(ctx).Order("asset_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Asset, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
