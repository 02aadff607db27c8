package ports

import (
	"context"
	"time"

	"meridian/contexts/data-distribution/provenance-ledger/domain/entities"
	contractsv1 "meridian/contracts/gen/events/v1"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for packet/outbox rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// AccessDecision carries the resolver verdict this module acts on.
type AccessDecision struct {
	Allowed bool
	Reason  string
}

// Authorizer delegates capability checks to the access-control area. The
// ledger never decides access itself.
type Authorizer interface {
	CanPublish(ctx context.Context, actorID string, assetID string, typeTag string) (AccessDecision, error)
	CanViewData(ctx context.Context, actorID string, assetID string, typeTag string) (AccessDecision, error)
}

// AuditRecorder appends provenance-relevant actions best-effort.
type AuditRecorder interface {
	RecordAuditAction(
		ctx context.Context,
		actorID string,
		action string,
		resourceType string,
		resourceID string,
		organizationID string,
		details map[string]string,
	) error
}

// CreatePacketInput is persisted atomically with its outbox record.
type CreatePacketInput struct {
	Packet   entities.DataPacket
	OutboxID string
}

// PacketFilter narrows packet listings.
type PacketFilter struct {
	AssetID         string
	Type            entities.PacketType
	PublisherID     string
	CorrectionsOnly bool
	UnreadFor       string
}

// Repository is the append-only packet store. CreatePacket must enforce
// uniqueness on (parent_id, version) so two concurrent corrections of the
// same packet cannot both win; the loser gets ErrCorrectionConflict.
type Repository interface {
	CreatePacket(ctx context.Context, input CreatePacketInput) error
	GetPacket(ctx context.Context, packetID string) (entities.DataPacket, error)
	ListPackets(ctx context.Context, filter PacketFilter) ([]entities.DataPacket, error)
	MarkRead(ctx context.Context, receipt entities.ReadReceipt) (bool, error)
	ListReceipts(ctx context.Context, packetID string) ([]entities.ReadReceipt, error)
}

// OutboxMessage represents a pending relay message.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository supports worker relay polling and acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// PacketPublishedEvent reuses the canonical cross-runtime envelope contract.
type PacketPublishedEvent = contractsv1.Envelope

// PacketEventPublisher emits packet lifecycle events to the event bus adapter.
type PacketEventPublisher interface {
	PublishPacketEvent(ctx context.Context, event PacketPublishedEvent) error
}
