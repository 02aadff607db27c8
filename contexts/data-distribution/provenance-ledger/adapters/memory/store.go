package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"meridian/contexts/data-distribution/provenance-ledger/domain/entities"
	domainerrors "meridian/contexts/data-distribution/provenance-ledger/domain/errors"
	"meridian/contexts/data-distribution/provenance-ledger/ports"

	"github.com/google/uuid"
)

type receiptKey struct {
	packetID string
	readerID string
}

type correctionKey struct {
	parentID string
	version  int
}

// Store is an in-memory packet ledger implementing the repository, outbox,
// clock and id-generator ports. It is intended for tests and local wiring.
type Store struct {
	mu          sync.RWMutex
	packets     map[string]entities.DataPacket
	corrections map[correctionKey]string
	receipts    map[receiptKey]entities.ReadReceipt
	outbox      map[string]outboxRow
}

type outboxRow struct {
	ports.OutboxMessage
	PublishedAt *time.Time
}

func NewStore() *Store {
	return &Store{
		packets:     make(map[string]entities.DataPacket),
		corrections: make(map[correctionKey]string),
		receipts:    make(map[receiptKey]entities.ReadReceipt),
		outbox:      make(map[string]outboxRow),
	}
}

func (s *Store) CreatePacket(_ context.Context, input ports.CreatePacketInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	packet := input.Packet
	if _, ok := s.packets[packet.PacketID]; ok {
		return domainerrors.ErrCorrectionConflict
	}
	if packet.ParentID != nil {
		key := correctionKey{parentID: *packet.ParentID, version: packet.Version}
		if _, taken := s.corrections[key]; taken {
			return domainerrors.ErrCorrectionConflict
		}
		s.corrections[key] = packet.PacketID
	}
	s.packets[packet.PacketID] = packet

	return s.appendOutbox(input.OutboxID, "packets.published", map[string]string{
		"packet_id": packet.PacketID,
		"asset_id":  packet.AssetID,
		"type":      string(packet.Type),
	}, packet.PublishedAt)
}

func (s *Store) GetPacket(_ context.Context, packetID string) (entities.DataPacket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	packet, ok := s.packets[packetID]
	if !ok {
		return entities.DataPacket{}, domainerrors.ErrPacketNotFound
	}
	return packet, nil
}

// TamperPayload overwrites a stored payload without recomputing the hash.
// Test hook for integrity verification; never used by application code.
func (s *Store) TamperPayload(packetID string, payload json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	packet, ok := s.packets[packetID]
	if !ok {
		return
	}
	packet.Payload = payload
	s.packets[packetID] = packet
}

func (s *Store) ListPackets(_ context.Context, filter ports.PacketFilter) ([]entities.DataPacket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.DataPacket, 0)
	for _, packet := range s.packets {
		if filter.AssetID != "" && packet.AssetID != filter.AssetID {
			continue
		}
		if filter.Type != "" && packet.Type != filter.Type {
			continue
		}
		if filter.PublisherID != "" && packet.PublisherID != filter.PublisherID {
			continue
		}
		if filter.CorrectionsOnly && !packet.IsCorrection() {
			continue
		}
		if filter.UnreadFor != "" {
			if _, read := s.receipts[receiptKey{packetID: packet.PacketID, readerID: filter.UnreadFor}]; read {
				continue
			}
		}
		items = append(items, packet)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].PublishedAt.Before(items[j].PublishedAt)
	})
	return items, nil
}

func (s *Store) MarkRead(_ context.Context, receipt entities.ReadReceipt) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := receiptKey{packetID: receipt.PacketID, readerID: receipt.ReaderID}
	if _, ok := s.receipts[key]; ok {
		return false, nil
	}
	s.receipts[key] = receipt
	return true, nil
}

func (s *Store) ListReceipts(_ context.Context, packetID string) ([]entities.ReadReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.ReadReceipt, 0)
	for key, receipt := range s.receipts {
		if key.packetID == packetID {
			items = append(items, receipt)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ReadAt.Before(items[j].ReadAt)
	})
	return items, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if row.PublishedAt != nil {
			continue
		}
		items = append(items, row.OutboxMessage)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[outboxID]
	if !ok {
		return domainerrors.ErrPacketNotFound
	}
	row.PublishedAt = &publishedAt
	s.outbox[outboxID] = row
	return nil
}

// Now implements ports.Clock.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// NewID implements ports.IDGenerator.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) appendOutbox(outboxID string, eventType string, payload map[string]string, at time.Time) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.outbox[outboxID] = outboxRow{
		OutboxMessage: ports.OutboxMessage{
			OutboxID:  outboxID,
			EventType: eventType,
			Payload:   encoded,
			CreatedAt: at,
		},
	}
	return nil
}
