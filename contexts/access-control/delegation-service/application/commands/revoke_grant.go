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

// RevokeGrantCommand ends an active grant.
type RevokeGrantCommand struct {
	ActorID string
	GrantID string
}

// RevokeGrantUseCase transitions Active to Revoked. Revoked is terminal:
// re-requesting delegation creates a new grant record.
type RevokeGrantUseCase struct {
	Repository  ports.Repository
	Directory   ports.AssetDirectory
	Admin       ports.AdminChecker
	Audit       ports.AuditRecorder
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u RevokeGrantUseCase) Execute(ctx context.Context, cmd RevokeGrantCommand) (entities.AccessGrant, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.AccessGrant{}, domainerrors.ErrNotRevoker
	}
	grant, err := u.Repository.GetGrant(ctx, cmd.GrantID)
	if err != nil {
		return entities.AccessGrant{}, err
	}
	if grant.Status != entities.GrantActive {
		return entities.AccessGrant{}, domainerrors.ErrInvalidTransition
	}

	allowed, err := canRevoke(ctx, u.Directory, u.Admin, cmd.ActorID, grant)
	if err != nil {
		return entities.AccessGrant{}, err
	}
	if !allowed {
		return entities.AccessGrant{}, domainerrors.ErrNotRevoker
	}

	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.AccessGrant{}, err
	}
	updated, err := u.Repository.TransitionGrant(ctx, ports.GrantTransitionInput{
		GrantID:  grant.GrantID,
		OutboxID: outboxID,
		From:     entities.GrantActive,
		To:       entities.GrantRevoked,
		ActorID:  cmd.ActorID,
		At:       u.now(),
	})
	if err != nil {
		logger.Error("grant transition failed",
			"event", "grant_transition_failed",
			"module", "access-control/delegation-service",
			"layer", "application",
			"grant_id", grant.GrantID,
			"to", string(entities.GrantRevoked),
			"error", err.Error(),
		)
		return entities.AccessGrant{}, err
	}

	if u.Audit != nil {
		if err := u.Audit.RecordAuditAction(ctx, cmd.ActorID, "grant.revoked", "access_grant", grant.GrantID, grant.GranteeID, nil); err != nil {
			logger.Warn("audit record failed",
				"event", "grant_audit_failed",
				"module", "access-control/delegation-service",
				"layer", "application",
				"grant_id", grant.GrantID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("grant revoked",
		"event", "grant_revoked",
		"module", "access-control/delegation-service",
		"layer", "application",
		"grant_id", grant.GrantID,
		"actor_id", cmd.ActorID,
	)
	return updated, nil
}

func (u RevokeGrantUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
