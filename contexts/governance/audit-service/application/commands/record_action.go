package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"meridian/contexts/governance/audit-service/domain/entities"
	domainerrors "meridian/contexts/governance/audit-service/domain/errors"
	"meridian/contexts/governance/audit-service/ports"
)

// RecordActionCommand captures one authorization-relevant action.
type RecordActionCommand struct {
	ActorID        string
	Action         string
	ResourceType   string
	ResourceID     string
	OrganizationID string
	Details        map[string]string
}

// RecordActionUseCase appends one immutable audit entry.
type RecordActionUseCase struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u RecordActionUseCase) Execute(ctx context.Context, cmd RecordActionCommand) (entities.AuditEntry, error) {
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.AuditEntry{}, domainerrors.ErrInvalidActorID
	}
	if strings.TrimSpace(cmd.Action) == "" {
		return entities.AuditEntry{}, domainerrors.ErrInvalidAction
	}
	if strings.TrimSpace(cmd.ResourceType) == "" || strings.TrimSpace(cmd.ResourceID) == "" {
		return entities.AuditEntry{}, domainerrors.ErrInvalidResource
	}

	auditLogID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.AuditEntry{}, err
	}

	entry := entities.AuditEntry{
		AuditLogID:     auditLogID,
		ActorID:        cmd.ActorID,
		Action:         cmd.Action,
		ResourceType:   cmd.ResourceType,
		ResourceID:     cmd.ResourceID,
		OrganizationID: cmd.OrganizationID,
		RecordedAt:     u.now(),
		Details:        cmd.Details,
	}
	if err := u.Repository.AppendEntry(ctx, entry); err != nil {
		return entities.AuditEntry{}, err
	}
	return entry, nil
}

func (u RecordActionUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
