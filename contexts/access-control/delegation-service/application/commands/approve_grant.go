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

// ApproveGrantCommand decides a pending grant.
type ApproveGrantCommand struct {
	ApproverID string
	GrantID    string
	Approve    bool
}

// ApproveGrantUseCase transitions PendingApproval to Active or Rejected.
// Only the scoped asset's manager (or admin:all) may decide; any other state
// fails without a state change.
type ApproveGrantUseCase struct {
	Repository  ports.Repository
	Directory   ports.AssetDirectory
	Admin       ports.AdminChecker
	Audit       ports.AuditRecorder
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u ApproveGrantUseCase) Execute(ctx context.Context, cmd ApproveGrantCommand) (entities.AccessGrant, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.ApproverID) == "" {
		return entities.AccessGrant{}, domainerrors.ErrNotApprover
	}
	grant, err := u.Repository.GetGrant(ctx, cmd.GrantID)
	if err != nil {
		return entities.AccessGrant{}, err
	}
	if grant.Status != entities.GrantPendingApproval {
		return entities.AccessGrant{}, domainerrors.ErrInvalidTransition
	}

	allowed, err := canApprove(ctx, u.Directory, u.Admin, cmd.ApproverID, grant)
	if err != nil {
		return entities.AccessGrant{}, err
	}
	if !allowed {
		return entities.AccessGrant{}, domainerrors.ErrNotApprover
	}

	to := entities.GrantRejected
	action := "grant.rejected"
	if cmd.Approve {
		to = entities.GrantActive
		action = "grant.approved"
	}

	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.AccessGrant{}, err
	}
	updated, err := u.Repository.TransitionGrant(ctx, ports.GrantTransitionInput{
		GrantID:  grant.GrantID,
		OutboxID: outboxID,
		From:     entities.GrantPendingApproval,
		To:       to,
		ActorID:  cmd.ApproverID,
		At:       u.now(),
	})
	if err != nil {
		logger.Error("grant transition failed",
			"event", "grant_transition_failed",
			"module", "access-control/delegation-service",
			"layer", "application",
			"grant_id", grant.GrantID,
			"to", string(to),
			"error", err.Error(),
		)
		return entities.AccessGrant{}, err
	}

	if u.Audit != nil {
		if err := u.Audit.RecordAuditAction(ctx, cmd.ApproverID, action, "access_grant", grant.GrantID, grant.GranteeID, nil); err != nil {
			logger.Warn("audit record failed",
				"event", "grant_audit_failed",
				"module", "access-control/delegation-service",
				"layer", "application",
				"grant_id", grant.GrantID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("grant decided",
		"event", "grant_decided",
		"module", "access-control/delegation-service",
		"layer", "application",
		"grant_id", grant.GrantID,
		"status", string(updated.Status),
		"approver_id", cmd.ApproverID,
	)
	return updated, nil
}

func (u ApproveGrantUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
