package ports

import "context"

// RoleRegistry resolves the static permission baseline for a role.
// Unknown roles resolve to an empty set, never an error: callers must treat
// empty as deny-by-default.
type RoleRegistry interface {
	PermissionsFor(ctx context.Context, roleID string) ([]string, error)
}
