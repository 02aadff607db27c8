package entities

// PermissionAdminAll short-circuits every authorization check to allowed.
const PermissionAdminAll = "admin:all"

// Generic resource permissions carried by the static role baseline.
const (
	PermissionPacketsRead        = "packets.read"
	PermissionPacketsWrite       = "packets.write"
	PermissionGrantsRead         = "grants.read"
	PermissionGrantsWrite        = "grants.write"
	PermissionSubscriptionsRead  = "subscriptions.read"
	PermissionSubscriptionsWrite = "subscriptions.write"
	PermissionAuditRead          = "audit.read"
)

// Role models a permission bundle keyed by organization kind.
type Role struct {
	RoleID      string   `json:"role_id"`
	RoleName    string   `json:"role_name"`
	Permissions []string `json:"permissions"`
}
