package recorder

import (
	"context"
	"log/slog"

	"meridian/contexts/governance/audit-service/application/commands"
)

// Recorder adapts RecordActionUseCase to the flat AuditRecorder ports declared
// by the mutating modules. Audit failures are surfaced to the caller, which
// treats them as best-effort and never rolls back the primary operation.
type Recorder struct {
	RecordAction commands.RecordActionUseCase
	Logger       *slog.Logger
}

func (r Recorder) RecordAuditAction(
	ctx context.Context,
	actorID string,
	action string,
	resourceType string,
	resourceID string,
	organizationID string,
	details map[string]string,
) error {
	_, err := r.RecordAction.Execute(ctx, commands.RecordActionCommand{
		ActorID:        actorID,
		Action:         action,
		ResourceType:   resourceType,
		ResourceID:     resourceID,
		OrganizationID: organizationID,
		Details:        details,
	})
	return err
}
