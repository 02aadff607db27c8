package delegation

import (
	"log/slog"

	httpadapter "meridian/contexts/access-control/delegation-service/adapters/http"
	"meridian/contexts/access-control/delegation-service/adapters/memory"
	"meridian/contexts/access-control/delegation-service/application/commands"
	"meridian/contexts/access-control/delegation-service/application/queries"
	"meridian/contexts/access-control/delegation-service/application/workers"
	"meridian/contexts/access-control/delegation-service/ports"
)

// Module is the delegation-service composition root exposed to runtime wiring.
type Module struct {
	Handler   httpadapter.Handler
	List      queries.ListGrantsUseCase
	Effective queries.EffectiveCapabilitiesUseCase
	Relay     workers.OutboxRelay
	Store     *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository    ports.Repository
	Outbox        ports.OutboxRepository
	Publisher     ports.GrantChangedPublisher
	Directory     ports.AssetDirectory
	Subscriptions ports.SubscriptionReader
	Admin         ports.AdminChecker
	Audit         ports.AuditRecorder
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	create := commands.CreateGrantUseCase{
		Repository:    deps.Repository,
		Directory:     deps.Directory,
		Subscriptions: deps.Subscriptions,
		Audit:         deps.Audit,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		Logger:        deps.Logger,
	}
	decide := commands.ApproveGrantUseCase{
		Repository:  deps.Repository,
		Directory:   deps.Directory,
		Admin:       deps.Admin,
		Audit:       deps.Audit,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	revoke := commands.RevokeGrantUseCase{
		Repository:  deps.Repository,
		Directory:   deps.Directory,
		Admin:       deps.Admin,
		Audit:       deps.Audit,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	list := queries.ListGrantsUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
	}
	effective := queries.EffectiveCapabilitiesUseCase{
		Repository:    deps.Repository,
		Directory:     deps.Directory,
		Subscriptions: deps.Subscriptions,
		Clock:         deps.Clock,
	}

	return Module{
		Handler: httpadapter.Handler{
			Create:    create,
			Decide:    decide,
			Revoke:    revoke,
			List:      list,
			Effective: effective,
			Logger:    deps.Logger,
		},
		List:      list,
		Effective: effective,
		Relay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(
	directory ports.AssetDirectory,
	subscriptions ports.SubscriptionReader,
	admin ports.AdminChecker,
	audit ports.AuditRecorder,
	publisher ports.GrantChangedPublisher,
	logger *slog.Logger,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:    store,
		Outbox:        store,
		Publisher:     publisher,
		Directory:     directory,
		Subscriptions: subscriptions,
		Admin:         admin,
		Audit:         audit,
		Clock:         store,
		IDGenerator:   store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
