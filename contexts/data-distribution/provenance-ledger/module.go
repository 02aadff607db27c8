package provenance

import (
	"log/slog"

	httpadapter "meridian/contexts/data-distribution/provenance-ledger/adapters/http"
	"meridian/contexts/data-distribution/provenance-ledger/adapters/memory"
	"meridian/contexts/data-distribution/provenance-ledger/application/commands"
	"meridian/contexts/data-distribution/provenance-ledger/application/queries"
	"meridian/contexts/data-distribution/provenance-ledger/application/workers"
	"meridian/contexts/data-distribution/provenance-ledger/ports"
)

// Module is the provenance-ledger composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	List    queries.ListPacketsUseCase
	Verify  queries.VerifyPacketUseCase
	Relay   workers.OutboxRelay
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Outbox      ports.OutboxRepository
	Publisher   ports.PacketEventPublisher
	Authorizer  ports.Authorizer
	Audit       ports.AuditRecorder
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	publish := commands.PublishPacketUseCase{
		Repository:  deps.Repository,
		Authorizer:  deps.Authorizer,
		Audit:       deps.Audit,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	correct := commands.CorrectPacketUseCase{
		Repository:  deps.Repository,
		Authorizer:  deps.Authorizer,
		Audit:       deps.Audit,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	markRead := commands.MarkReadUseCase{
		Repository: deps.Repository,
		Authorizer: deps.Authorizer,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	get := queries.GetPacketUseCase{
		Repository: deps.Repository,
		Authorizer: deps.Authorizer,
	}
	list := queries.ListPacketsUseCase{
		Repository: deps.Repository,
		Authorizer: deps.Authorizer,
	}
	verify := queries.VerifyPacketUseCase{Repository: deps.Repository}
	receipts := queries.ListReceiptsUseCase{
		Repository: deps.Repository,
		Authorizer: deps.Authorizer,
	}

	return Module{
		Handler: httpadapter.Handler{
			Publish:  publish,
			Correct:  correct,
			MarkRead: markRead,
			Get:      get,
			List:     list,
			Verify:   verify,
			Receipts: receipts,
			Logger:   deps.Logger,
		},
		List:   list,
		Verify: verify,
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
	authorizer ports.Authorizer,
	audit ports.AuditRecorder,
	publisher ports.PacketEventPublisher,
	logger *slog.Logger,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Outbox:      store,
		Publisher:   publisher,
		Authorizer:  authorizer,
		Audit:       audit,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
