package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"meridian/contexts/data-distribution/provenance-ledger/domain/entities"
	domainerrors "meridian/contexts/data-distribution/provenance-ledger/domain/errors"
	"meridian/contexts/data-distribution/provenance-ledger/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

// CreatePacket inserts the packet and its outbox row in one transaction. The
// idx_packet_correction unique index on (parent_id, version) makes the loser
// of a concurrent correction race fail with a conflict instead of forking the
// chain.
func (r *Repository) CreatePacket(ctx context.Context, input ports.CreatePacketInput) error {
	row := packetModelFromEntity(input.Packet)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrCorrectionConflict
			}
			return err
		}
		return insertOutboxTx(tx, input.OutboxID, map[string]string{
			"packet_id": input.Packet.PacketID,
			"asset_id":  input.Packet.AssetID,
			"type":      string(input.Packet.Type),
		}, input.Packet.PublishedAt)
	})
}

func (r *Repository) GetPacket(ctx context.Context, packetID string) (entities.DataPacket, error) {
	var row packetModel
	err := r.db.WithContext(ctx).
		Where("packet_id = ?", strings.TrimSpace(packetID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DataPacket{}, domainerrors.ErrPacketNotFound
		}
		return entities.DataPacket{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPackets(ctx context.Context, filter ports.PacketFilter) ([]entities.DataPacket, error) {
	tx := r.db.WithContext(ctx).Model(&packetModel{})
	if strings.TrimSpace(filter.AssetID) != "" {
		tx = tx.Where("asset_id = ?", strings.TrimSpace(filter.AssetID))
	}
	if filter.Type != "" {
		tx = tx.Where("type = ?", string(filter.Type))
	}
	if strings.TrimSpace(filter.PublisherID) != "" {
		tx = tx.Where("publisher_id = ?", strings.TrimSpace(filter.PublisherID))
	}
	if filter.CorrectionsOnly {
		tx = tx.Where("parent_id IS NOT NULL")
	}
	if strings.TrimSpace(filter.UnreadFor) != "" {
		tx = tx.Where(
			"packet_id NOT IN (?)",
			r.db.Model(&receiptModel{}).
				Select("packet_id").
				Where("reader_id = ?", strings.TrimSpace(filter.UnreadFor)),
		)
	}

	var rows []packetModel
	if err := tx.Order("published_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.DataPacket, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) MarkRead(ctx context.Context, receipt entities.ReadReceipt) (bool, error) {
	row := receiptModel{
		PacketID: strings.TrimSpace(receipt.PacketID),
		ReaderID: strings.TrimSpace(receipt.ReaderID),
		ReadAt:   receipt.ReadAt.UTC(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "packet_id"}, {Name: "reader_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListReceipts(ctx context.Context, packetID string) ([]entities.ReadReceipt, error) {
	var rows []receiptModel
	if err := r.db.WithContext(ctx).
		Where("packet_id = ?", strings.TrimSpace(packetID)).
		Order("read_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.ReadReceipt, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.ReadReceipt{
			PacketID: row.PacketID,
			ReaderID: row.ReaderID,
			ReadAt:   row.ReadAt.UTC(),
		})
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
		return domainerrors.ErrPacketNotFound
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
		EventType: "packets.published",
		Payload:   encoded,
		Status:    outboxStatusPending,
		CreatedAt: at.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return tx.Create(&row).Error
}

type packetModel struct {
	PacketID       string    `gorm:"column:packet_id;primaryKey"`
	AssetID        string    `gorm:"column:asset_id;index"`
	PublisherID    string    `gorm:"column:publisher_id;index"`
	Type           string    `gorm:"column:type"`
	PeriodLabel    string    `gorm:"column:period_label"`
	Payload        []byte    `gorm:"column:payload;type:jsonb"`
	ContentHash    string    `gorm:"column:content_hash"`
	Version        int       `gorm:"column:version;uniqueIndex:idx_packet_correction"`
	ParentID       *string   `gorm:"column:parent_id;uniqueIndex:idx_packet_correction"`
	CorrectionNote string    `gorm:"column:correction_note"`
	PublishedAt    time.Time `gorm:"column:published_at"`
}

func (packetModel) TableName() string {
	return "data_packets"
}

func packetModelFromEntity(item entities.DataPacket) packetModel {
	return packetModel{
		PacketID:       strings.TrimSpace(item.PacketID),
		AssetID:        strings.TrimSpace(item.AssetID),
		PublisherID:    strings.TrimSpace(item.PublisherID),
		Type:           string(item.Type),
		PeriodLabel:    strings.TrimSpace(item.PeriodLabel),
		Payload:        append([]byte(nil), item.Payload...),
		ContentHash:    item.ContentHash,
		Version:        item.Version,
		ParentID:       item.ParentID,
		CorrectionNote: strings.TrimSpace(item.CorrectionNote),
		PublishedAt:    item.PublishedAt.UTC(),
	}
}

func (m packetModel) toEntity() entities.DataPacket {
	return entities.DataPacket{
		PacketID:       m.PacketID,
		AssetID:        m.AssetID,
		PublisherID:    m.PublisherID,
		Type:           entities.PacketType(m.Type),
		PeriodLabel:    m.PeriodLabel,
		Payload:        append(json.RawMessage(nil), m.Payload...),
		ContentHash:    m.ContentHash,
		Version:        m.Version,
		ParentID:       m.ParentID,
		CorrectionNote: m.CorrectionNote,
		PublishedAt:    m.PublishedAt.UTC(),
	}
}

type receiptModel struct {
	PacketID string    `gorm:"column:packet_id;primaryKey"`
	ReaderID string    `gorm:"column:reader_id;primaryKey"`
	ReadAt   time.Time `gorm:"column:read_at"`
}

func (receiptModel) TableName() string {
	return "packet_read_receipts"
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
	return "packet_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
