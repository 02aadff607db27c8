package audit

import (
	"log/slog"

	"meridian/contexts/governance/audit-service/adapters/memory"
	"meridian/contexts/governance/audit-service/adapters/recorder"
	"meridian/contexts/governance/audit-service/application/commands"
	"meridian/contexts/governance/audit-service/application/queries"
	"meridian/contexts/governance/audit-service/ports"
)

// Module is the audit-service composition root exposed to runtime wiring.
type Module struct {
	RecordAction commands.RecordActionUseCase
	ListEntries  queries.ListEntriesUseCase
	Recorder     recorder.Recorder
	Store        *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	recordAction := commands.RecordActionUseCase{
		Repository:  deps.Repository,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		RecordAction: recordAction,
		ListEntries:  queries.ListEntriesUseCase{Repository: deps.Repository},
		Recorder:     recorder.Recorder{RecordAction: recordAction, Logger: deps.Logger},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
