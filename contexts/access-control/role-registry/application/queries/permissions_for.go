package queries

import (
	"context"
	"strings"

	"meridian/contexts/access-control/role-registry/ports"
)

// PermissionsForUseCase resolves the static permission baseline for a role.
// Empty input and unknown roles both resolve to an empty set.
type PermissionsForUseCase struct {
	Registry ports.RoleRegistry
}

func (u PermissionsForUseCase) Execute(ctx context.Context, roleID string) ([]string, error) {
	if strings.TrimSpace(roleID) == "" {
		return []string{}, nil
	}
	return u.Registry.PermissionsFor(ctx, roleID)
}
