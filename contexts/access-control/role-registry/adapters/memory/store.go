package memory

import (
	"context"
	"sync"

	"meridian/contexts/access-control/role-registry/domain/entities"
)

// Store is the in-memory role registry seeded with the baseline role per
// organization kind. Roles are static records; there is no mutation path.
type Store struct {
	mu    sync.RWMutex
	roles map[string]entities.Role
}

func NewStore() *Store {
	roles := map[string]entities.Role{
		"asset_manager": {
			RoleID:   "asset_manager",
			RoleName: "asset manager",
			Permissions: []string{
				entities.PermissionPacketsRead,
				entities.PermissionPacketsWrite,
				entities.PermissionGrantsRead,
				entities.PermissionGrantsWrite,
				entities.PermissionSubscriptionsRead,
				entities.PermissionSubscriptionsWrite,
				entities.PermissionAuditRead,
			},
		},
		"fund_admin": {
			RoleID:   "fund_admin",
			RoleName: "fund administrator",
			Permissions: []string{
				entities.PermissionPacketsRead,
				entities.PermissionPacketsWrite,
				entities.PermissionGrantsRead,
				entities.PermissionSubscriptionsRead,
				entities.PermissionSubscriptionsWrite,
			},
		},
		"limited_partner": {
			RoleID:   "limited_partner",
			RoleName: "limited partner",
			Permissions: []string{
				entities.PermissionPacketsRead,
				entities.PermissionGrantsRead,
				entities.PermissionGrantsWrite,
				entities.PermissionSubscriptionsRead,
			},
		},
		"auditor": {
			RoleID:      "auditor",
			RoleName:    "auditor",
			Permissions: []string{entities.PermissionPacketsRead, entities.PermissionAuditRead},
		},
		"consultant": {
			RoleID:      "consultant",
			RoleName:    "consultant",
			Permissions: []string{entities.PermissionPacketsRead},
		},
		"tax_advisor": {
			RoleID:      "tax_advisor",
			RoleName:    "tax advisor",
			Permissions: []string{entities.PermissionPacketsRead},
		},
		"platform_admin": {
			RoleID:      "platform_admin",
			RoleName:    "platform administrator",
			Permissions: []string{entities.PermissionAdminAll},
		},
	}
	return &Store{roles: roles}
}

// PermissionsFor returns the role's permission set, or an empty set for an
// unknown role.
func (s *Store) PermissionsFor(_ context.Context, roleID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[roleID]
	if !ok {
		return []string{}, nil
	}
	permissions := make([]string, len(role.Permissions))
	copy(permissions, role.Permissions)
	return permissions, nil
}
