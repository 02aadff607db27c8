package entities

import "time"

// AuditEntry is an immutable record of an authorization-relevant action.
// Entries are append-only: application logic never updates or deletes them.
type AuditEntry struct {
	AuditLogID     string            `json:"audit_log_id"`
	ActorID        string            `json:"actor_id"`
	Action         string            `json:"action"`
	ResourceType   string            `json:"resource_type"`
	ResourceID     string            `json:"resource_id"`
	OrganizationID string            `json:"organization_id"`
	RecordedAt     time.Time         `json:"recorded_at"`
	Details        map[string]string `json:"details,omitempty"`
}
