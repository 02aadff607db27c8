package subscription

import (
	"log/slog"

	httpadapter "meridian/contexts/fund-network/subscription-service/adapters/http"
	"meridian/contexts/fund-network/subscription-service/adapters/memory"
	"meridian/contexts/fund-network/subscription-service/application/commands"
	"meridian/contexts/fund-network/subscription-service/application/queries"
	"meridian/contexts/fund-network/subscription-service/ports"
)

// Module is the subscription-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	List    queries.ListSubscriptionsUseCase
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Directory   ports.AssetDirectory
	Audit       ports.AuditRecorder
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	invite := commands.InviteSubscriberUseCase{
		Repository:  deps.Repository,
		Directory:   deps.Directory,
		Audit:       deps.Audit,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	request := commands.RequestAccessUseCase{
		Repository:  deps.Repository,
		Directory:   deps.Directory,
		Audit:       deps.Audit,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	respond := commands.RespondToSubscriptionUseCase{
		Repository: deps.Repository,
		Directory:  deps.Directory,
		Audit:      deps.Audit,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	list := queries.ListSubscriptionsUseCase{Repository: deps.Repository}

	return Module{
		Handler: httpadapter.Handler{
			Invite:  invite,
			Request: request,
			Respond: respond,
			List:    list,
			Logger:  deps.Logger,
		},
		List: list,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(directory ports.AssetDirectory, audit ports.AuditRecorder, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Directory:   directory,
		Audit:       audit,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
