package services

import "meridian/contexts/access-control/role-registry/domain/entities"

// GrantsPermission reports whether a permission set covers a permission.
// admin:all covers everything.
func GrantsPermission(permissions []string, permission string) bool {
	for _, p := range permissions {
		if p == entities.PermissionAdminAll || p == permission {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the set carries the admin:all short-circuit.
func IsAdmin(permissions []string) bool {
	for _, p := range permissions {
		if p == entities.PermissionAdminAll {
			return true
		}
	}
	return false
}
