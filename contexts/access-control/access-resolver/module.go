package accessresolver

import (
	"log/slog"

	httpadapter "meridian/contexts/access-control/access-resolver/adapters/http"
	"meridian/contexts/access-control/access-resolver/application/queries"
	"meridian/contexts/access-control/access-resolver/ports"
)

// Module is the access-resolver composition root exposed to runtime wiring.
// The resolver is read-only: it owns no storage and evaluates against the
// delegation, directory and subscription ports at check time.
type Module struct {
	Handler     httpadapter.Handler
	CanPerform  queries.CanPerformUseCase
	Filter      queries.FilterAccessibleUseCase
	Subscribers queries.VisibleSubscribersUseCase
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Grants        ports.GrantReader
	Directory     ports.AssetDirectory
	Subscriptions ports.SubscriptionReader
	Admin         ports.AdminChecker
	Clock         ports.Clock
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	canPerform := queries.CanPerformUseCase{
		Grants:        deps.Grants,
		Directory:     deps.Directory,
		Subscriptions: deps.Subscriptions,
		Admin:         deps.Admin,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	filter := queries.FilterAccessibleUseCase{CanPerform: canPerform}
	subscribers := queries.VisibleSubscribersUseCase{
		CanPerform:    canPerform,
		Subscriptions: deps.Subscriptions,
	}

	return Module{
		Handler: httpadapter.Handler{
			Check:       canPerform,
			Subscribers: subscribers,
			Logger:      deps.Logger,
		},
		CanPerform:  canPerform,
		Filter:      filter,
		Subscribers: subscribers,
	}
}
