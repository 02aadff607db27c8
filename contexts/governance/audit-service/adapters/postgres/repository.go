package postgresadapter

import (
	"context"
	"encoding/json"
	"time"

	"meridian/contexts/governance/audit-service/domain/entities"
	"meridian/contexts/governance/audit-service/ports"

	"gorm.io/gorm"
)

// Repository is the gorm-backed append-only audit log.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type auditEntryModel struct {
	AuditLogID     string    `gorm:"column:audit_log_id;primaryKey"`
	ActorID        string    `gorm:"column:actor_id;index"`
	Action         string    `gorm:"column:action"`
	ResourceType   string    `gorm:"column:resource_type;index"`
	ResourceID     string    `gorm:"column:resource_id;index"`
	OrganizationID string    `gorm:"column:organization_id"`
	RecordedAt     time.Time `gorm:"column:recorded_at"`
	Details        []byte    `gorm:"column:details"`
}

func (auditEntryModel) TableName() string { return "audit_log" }

func (r *Repository) AppendEntry(ctx context.Context, entry entities.AuditEntry) error {
	var details []byte
	if len(entry.Details) > 0 {
		encoded, err := json.Marshal(entry.Details)
		if err != nil {
			return err
		}
		details = encoded
	}
	row := auditEntryModel{
		AuditLogID:     entry.AuditLogID,
		ActorID:        entry.ActorID,
		Action:         entry.Action,
		ResourceType:   entry.ResourceType,
		ResourceID:     entry.ResourceID,
		OrganizationID: entry.OrganizationID,
		RecordedAt:     entry.RecordedAt,
		Details:        details,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListEntries(ctx context.Context, filter ports.EntryFilter) ([]entities.AuditEntry, error) {
	tx := r.db.WithContext(ctx).Model(&auditEntryModel{})
	if filter.ActorID != "" {
		tx = tx.Where("actor_id = ?", filter.ActorID)
	}
	if filter.ResourceType != "" {
		tx = tx.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.ResourceID != "" {
		tx = tx.Where("resource_id = ?", filter.ResourceID)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var rows []auditEntryModel
	if err := tx.Order("recorded_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.AuditEntry, 0, len(rows))
	for _, row := range rows {
		entry := entities.AuditEntry{
			AuditLogID:     row.AuditLogID,
			ActorID:        row.ActorID,
			Action:         row.Action,
			ResourceType:   row.ResourceType,
			ResourceID:     row.ResourceID,
			OrganizationID: row.OrganizationID,
			RecordedAt:     row.RecordedAt,
		}
		if len(row.Details) > 0 {
			details := make(map[string]string)
			if err := json.Unmarshal(row.Details, &details); err == nil {
				entry.Details = details
			}
		}
		items = append(items, entry)
	}
	return items, nil
}
