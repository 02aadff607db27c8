package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "meridian/contexts/access-control/delegation-service/application"
	"meridian/contexts/access-control/delegation-service/domain/entities"
	domainerrors "meridian/contexts/access-control/delegation-service/domain/errors"
	"meridian/contexts/access-control/delegation-service/ports"
)

// CreateGrantCommand contains input for a new access grant.
type CreateGrantCommand struct {
	GrantorID    string
	GranteeID    string
	AssetScope   entities.Scope
	TypeScope    entities.Scope
	Capabilities entities.Capabilities
	ValidFrom    *time.Time
	ExpiresAt    *time.Time
}

// CreateGrantUseCase validates grant invariants and applies the initial-state
// rule: the grant starts PendingApproval when any scoped asset requires
// manager approval and the grantor is not that asset's manager, Active
// otherwise.
type CreateGrantUseCase struct {
	Repository    ports.Repository
	Directory     ports.AssetDirectory
	Subscriptions ports.SubscriptionReader
	Audit         ports.AuditRecorder
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func (u CreateGrantUseCase) Execute(ctx context.Context, cmd CreateGrantCommand) (entities.AccessGrant, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.GrantorID) == "" {
		return entities.AccessGrant{}, domainerrors.ErrInvalidGrantorID
	}
	if strings.TrimSpace(cmd.GranteeID) == "" {
		return entities.AccessGrant{}, domainerrors.ErrInvalidGranteeID
	}
	if cmd.GrantorID == cmd.GranteeID {
		return entities.AccessGrant{}, domainerrors.ErrSelfGrant
	}
	if cmd.Capabilities.IsZero() {
		return entities.AccessGrant{}, domainerrors.ErrEmptyCapabilities
	}
	if cmd.AssetScope.IsEmpty() {
		return entities.AccessGrant{}, domainerrors.ErrEmptyAssetScope
	}

	now := u.now()
	if cmd.ExpiresAt != nil && !cmd.ExpiresAt.After(now) {
		return entities.AccessGrant{}, domainerrors.ErrInvalidExpiry
	}

	validFrom := now
	if cmd.ValidFrom != nil {
		validFrom = cmd.ValidFrom.UTC()
	}

	requiresApproval, err := u.requiresManagerApproval(ctx, cmd)
	if err != nil {
		return entities.AccessGrant{}, err
	}

	status := entities.GrantActive
	if requiresApproval {
		status = entities.GrantPendingApproval
	}

	grantID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.AccessGrant{}, err
	}
	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.AccessGrant{}, err
	}

	grant := entities.AccessGrant{
		GrantID:      grantID,
		GrantorID:    cmd.GrantorID,
		GranteeID:    cmd.GranteeID,
		AssetScope:   cmd.AssetScope,
		TypeScope:    cmd.TypeScope,
		Capabilities: cmd.Capabilities,
		Status:       status,
		ValidFrom:    validFrom,
		ExpiresAt:    cmd.ExpiresAt,
		CreatedAt:    now,
	}
	if err := u.Repository.CreateGrant(ctx, ports.CreateGrantInput{Grant: grant, OutboxID: outboxID}); err != nil {
		logger.Error("create grant write failed",
			"event", "grant_create_write_failed",
			"module", "access-control/delegation-service",
			"layer", "application",
			"grantor_id", cmd.GrantorID,
			"grantee_id", cmd.GranteeID,
			"error", err.Error(),
		)
		return entities.AccessGrant{}, err
	}

	if u.Audit != nil {
		if err := u.Audit.RecordAuditAction(ctx, cmd.GrantorID, "grant.created", "access_grant", grantID, cmd.GranteeID, map[string]string{
			"status": string(status),
		}); err != nil {
			logger.Warn("audit record failed",
				"event", "grant_audit_failed",
				"module", "access-control/delegation-service",
				"layer", "application",
				"grant_id", grantID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("grant created",
		"event", "grant_created",
		"module", "access-control/delegation-service",
		"layer", "application",
		"grant_id", grantID,
		"grantor_id", cmd.GrantorID,
		"grantee_id", cmd.GranteeID,
		"status", string(status),
	)
	return grant, nil
}

// requiresManagerApproval resolves the scoped assets (reachable set for ALL)
// and reports whether any of them gates delegations on manager approval while
// the grantor is not its manager.
func (u CreateGrantUseCase) requiresManagerApproval(ctx context.Context, cmd CreateGrantCommand) (bool, error) {
	assetIDs := cmd.AssetScope.IDs()
	if cmd.AssetScope.IsAll() {
		reachable, err := u.reachableAssetIDs(ctx, cmd.GrantorID)
		if err != nil {
			return false, err
		}
		assetIDs = reachable
	}
	for _, assetID := range assetIDs {
		asset, found, err := u.Directory.GetAsset(ctx, assetID)
		if err != nil {
			return false, err
		}
		if !found {
			if cmd.AssetScope.IsAll() {
				continue
			}
			return false, domainerrors.ErrAssetNotFound
		}
		if asset.RequireApproval && asset.ManagerID != cmd.GrantorID {
			return true, nil
		}
	}
	return false, nil
}

func (u CreateGrantUseCase) reachableAssetIDs(ctx context.Context, organizationID string) ([]string, error) {
	seen := make(map[string]struct{})
	managed, err := u.Directory.ListAssetIDsManagedBy(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	for _, id := range managed {
		seen[id] = struct{}{}
	}
	subscribed, err := u.Subscriptions.ListActiveSubscriptionAssetIDs(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	for _, id := range subscribed {
		seen[id] = struct{}{}
	}
	grants, err := u.Repository.GrantsFor(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	now := u.now()
	for _, grant := range grants {
		if !grant.IsLive(now) {
			continue
		}
		if grant.AssetScope.IsAll() {
			upstream, err := u.Directory.ListAssetIDsManagedBy(ctx, grant.GrantorID)
			if err != nil {
				return nil, err
			}
			for _, id := range upstream {
				seen[id] = struct{}{}
			}
			continue
		}
		for _, id := range grant.AssetScope.IDs() {
			seen[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return ids, nil
}

func (u CreateGrantUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
