package directory

import (
	"meridian/contexts/fund-network/directory-service/adapters/memory"
	"meridian/contexts/fund-network/directory-service/application/queries"
	"meridian/contexts/fund-network/directory-service/ports"
)

// Module is the directory-service composition root exposed to runtime wiring.
type Module struct {
	GetAsset        queries.GetAssetUseCase
	GetOrganization queries.GetOrganizationUseCase
	ListAssets      queries.ListAssetsUseCase
	Store           *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Directory ports.Directory
}

func NewModule(deps Dependencies) Module {
	return Module{
		GetAsset:        queries.GetAssetUseCase{Directory: deps.Directory},
		GetOrganization: queries.GetOrganizationUseCase{Directory: deps.Directory},
		ListAssets:      queries.ListAssetsUseCase{Directory: deps.Directory},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule() Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{Directory: store})
	module.Store = store
	return module
}
