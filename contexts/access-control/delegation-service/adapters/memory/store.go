package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"meridian/contexts/access-control/delegation-service/domain/entities"
	domainerrors "meridian/contexts/access-control/delegation-service/domain/errors"
	"meridian/contexts/access-control/delegation-service/ports"

	"github.com/google/uuid"
)

// Store is an in-memory grant repository implementing the repository, outbox,
// clock and id-generator ports. It is intended for tests and local wiring.
type Store struct {
	mu     sync.RWMutex
	grants map[string]entities.AccessGrant
	outbox map[string]outboxRow
}

type outboxRow struct {
	ports.OutboxMessage
	PublishedAt *time.Time
}

func NewStore() *Store {
	return &Store{
		grants: make(map[string]entities.AccessGrant),
		outbox: make(map[string]outboxRow),
	}
}

func (s *Store) CreateGrant(_ context.Context, input ports.CreateGrantInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.grants[input.Grant.GrantID]; ok {
		return domainerrors.ErrGrantConcurrentUpdate
	}
	s.grants[input.Grant.GrantID] = input.Grant
	return s.appendOutbox(input.OutboxID, "grants.changed", map[string]string{
		"grant_id":    input.Grant.GrantID,
		"action_type": "grant_created",
		"status":      string(input.Grant.Status),
	}, input.Grant.CreatedAt)
}

func (s *Store) GetGrant(_ context.Context, grantID string) (entities.AccessGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grant, ok := s.grants[grantID]
	if !ok {
		return entities.AccessGrant{}, domainerrors.ErrGrantNotFound
	}
	return grant, nil
}

// TransitionGrant applies one status change under the store lock, so readers
// observe either the pre- or post-transition grant, never a partial one.
func (s *Store) TransitionGrant(_ context.Context, input ports.GrantTransitionInput) (entities.AccessGrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	grant, ok := s.grants[input.GrantID]
	if !ok {
		return entities.AccessGrant{}, domainerrors.ErrGrantNotFound
	}
	if grant.Status != input.From {
		return entities.AccessGrant{}, domainerrors.ErrInvalidTransition
	}

	at := input.At.UTC()
	grant.Status = input.To
	switch input.To {
	case entities.GrantActive:
		actor := input.ActorID
		grant.ApprovedBy = &actor
		grant.ApprovedAt = &at
	case entities.GrantRevoked:
		grant.RevokedAt = &at
	}
	s.grants[input.GrantID] = grant

	if err := s.appendOutbox(input.OutboxID, "grants.changed", map[string]string{
		"grant_id":    grant.GrantID,
		"action_type": "grant_" + string(input.To),
		"status":      string(grant.Status),
	}, at); err != nil {
		return entities.AccessGrant{}, err
	}
	return grant, nil
}

func (s *Store) GrantsFor(_ context.Context, granteeID string) ([]entities.AccessGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.AccessGrant, 0)
	for _, grant := range s.grants {
		if grant.GranteeID == granteeID {
			items = append(items, grant)
		}
	}
	sortGrants(items)
	return items, nil
}

func (s *Store) GrantsBy(_ context.Context, grantorID string) ([]entities.AccessGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.AccessGrant, 0)
	for _, grant := range s.grants {
		if grant.GrantorID == grantorID {
			items = append(items, grant)
		}
	}
	sortGrants(items)
	return items, nil
}

// ImportLegacyDelegation normalizes and stores a legacy delegation row.
func (s *Store) ImportLegacyDelegation(d entities.LegacyDelegation) entities.AccessGrant {
	grant := entities.FromLegacyDelegation(d)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[grant.GrantID] = grant
	return grant
}

// ImportLegacyPublishingRight normalizes and stores a legacy publishing right.
func (s *Store) ImportLegacyPublishingRight(r entities.LegacyPublishingRight) entities.AccessGrant {
	grant := entities.FromLegacyPublishingRight(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[grant.GrantID] = grant
	return grant
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
		return domainerrors.ErrGrantNotFound
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

func sortGrants(items []entities.AccessGrant) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
