package ports

import (
	"context"
	"time"

	"meridian/contexts/access-control/delegation-service/domain/entities"
	contractsv1 "meridian/contracts/gen/events/v1"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for grant/outbox rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// AssetInfo is the directory projection this module needs.
type AssetInfo struct {
	AssetID         string
	ManagerID       string
	RequireApproval bool
	IsActive        bool
}

// AssetDirectory resolves assets and managed-asset listings from the
// fund-network directory.
type AssetDirectory interface {
	GetAsset(ctx context.Context, assetID string) (AssetInfo, bool, error)
	ListAssetIDsManagedBy(ctx context.Context, organizationID string) ([]string, error)
}

// SubscriptionReader exposes the subscription facts the capability walk and
// the ALL-scope reach resolution need.
type SubscriptionReader interface {
	HasActiveSubscription(ctx context.Context, organizationID string, assetID string) (bool, error)
	ListActiveSubscriptionAssetIDs(ctx context.Context, organizationID string) ([]string, error)
}

// AdminChecker reports whether an organization's role baseline carries
// admin:all.
type AdminChecker interface {
	IsAdmin(ctx context.Context, organizationID string) (bool, error)
}

// AuditRecorder appends authorization-relevant actions best-effort.
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

// CreateGrantInput is persisted atomically with its outbox record.
type CreateGrantInput struct {
	Grant    entities.AccessGrant
	OutboxID string
}

// GrantTransitionInput applies one status transition with an optimistic check
// on the expected current status.
type GrantTransitionInput struct {
	GrantID  string
	OutboxID string
	From     entities.GrantStatus
	To       entities.GrantStatus
	ActorID  string
	At       time.Time
}

// Repository is the write/read boundary for grant state. Status transitions
// must be atomic with respect to concurrent reads: a reader observes either
// the pre- or post-transition grant, never a partial one.
type Repository interface {
	CreateGrant(ctx context.Context, input CreateGrantInput) error
	GetGrant(ctx context.Context, grantID string) (entities.AccessGrant, error)
	TransitionGrant(ctx context.Context, input GrantTransitionInput) (entities.AccessGrant, error)
	GrantsFor(ctx context.Context, granteeID string) ([]entities.AccessGrant, error)
	GrantsBy(ctx context.Context, grantorID string) ([]entities.AccessGrant, error)
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

// GrantChangedEvent reuses the canonical cross-runtime envelope contract.
type GrantChangedEvent = contractsv1.Envelope

// GrantChangedPublisher emits grant change events to the event bus adapter.
type GrantChangedPublisher interface {
	PublishGrantChanged(ctx context.Context, event GrantChangedEvent) error
}
