package roleregistry

import (
	"meridian/contexts/access-control/role-registry/adapters/memory"
	"meridian/contexts/access-control/role-registry/application/queries"
	"meridian/contexts/access-control/role-registry/ports"
)

// Module is the role-registry composition root exposed to runtime wiring.
type Module struct {
	PermissionsFor queries.PermissionsForUseCase
	Store          *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Registry ports.RoleRegistry
}

func NewModule(deps Dependencies) Module {
	return Module{
		PermissionsFor: queries.PermissionsForUseCase{Registry: deps.Registry},
	}
}

// NewInMemoryModule builds the module over the seeded in-memory registry.
func NewInMemoryModule() Module {
	store := NewStore()
	module := NewModule(Dependencies{Registry: store})
	module.Store = store
	return module
}

// NewStore exposes the seeded registry for cross-module wiring.
func NewStore() *memory.Store {
	return memory.NewStore()
}
