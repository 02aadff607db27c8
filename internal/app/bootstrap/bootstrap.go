package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	accessresolver "meridian/contexts/access-control/access-resolver"
	delegation "meridian/contexts/access-control/delegation-service"
	delegationpostgres "meridian/contexts/access-control/delegation-service/adapters/postgres"
	delegationworkers "meridian/contexts/access-control/delegation-service/application/workers"
	roleregistry "meridian/contexts/access-control/role-registry"
	provenance "meridian/contexts/data-distribution/provenance-ledger"
	ledgerpostgres "meridian/contexts/data-distribution/provenance-ledger/adapters/postgres"
	ledgerworkers "meridian/contexts/data-distribution/provenance-ledger/application/workers"
	directory "meridian/contexts/fund-network/directory-service"
	directorypostgres "meridian/contexts/fund-network/directory-service/adapters/postgres"
	subscription "meridian/contexts/fund-network/subscription-service"
	subscriptionpostgres "meridian/contexts/fund-network/subscription-service/adapters/postgres"
	audit "meridian/contexts/governance/audit-service"
	auditpostgres "meridian/contexts/governance/audit-service/adapters/postgres"
	"meridian/internal/platform/config"
	"meridian/internal/platform/db"
	"meridian/internal/platform/httpserver"
	"meridian/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	grantRelay   delegationworkers.OutboxRelay
	packetRelay  ledgerworkers.OutboxRelay
	relayGrants  bool
	relayPackets bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	auditRepo := auditpostgres.NewRepository(pg.DB)
	auditModule := audit.NewModule(audit.Dependencies{
		Repository:  auditRepo,
		Clock:       auditpostgres.SystemClock{},
		IDGenerator: auditpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	directoryRepo := directorypostgres.NewRepository(pg.DB)
	directoryModule := directory.NewModule(directory.Dependencies{
		Directory: directoryRepo,
	})

	roles := roleregistry.NewInMemoryModule()
	admin := roleAdminChecker{
		directory:   directoryRepo,
		permissions: roles.PermissionsFor,
	}

	subscriptionRepo := subscriptionpostgres.NewRepository(pg.DB)
	subscriptionModule := subscription.NewModule(subscription.Dependencies{
		Repository:  subscriptionRepo,
		Directory:   subscriptionDirectory{directory: directoryRepo},
		Audit:       auditModule.Recorder,
		Clock:       subscriptionpostgres.SystemClock{},
		IDGenerator: subscriptionpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	// Outbox events are relayed by the worker process; the API only appends
	// outbox rows inside the grant/packet transactions.
	grantRepo := delegationpostgres.NewRepository(pg.DB, logger)
	delegationModule := delegation.NewModule(delegation.Dependencies{
		Repository:    grantRepo,
		Outbox:        grantRepo,
		Publisher:     nil,
		Directory:     grantDirectory{directory: directoryRepo},
		Subscriptions: grantSubscriptions{repository: subscriptionRepo},
		Admin:         admin,
		Audit:         auditModule.Recorder,
		Clock:         delegationpostgres.SystemClock{},
		IDGenerator:   delegationpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	resolverModule := accessresolver.NewModule(accessresolver.Dependencies{
		Grants:        grantRepo,
		Directory:     resolverDirectory{directory: directoryRepo},
		Subscriptions: resolverSubscriptions{repository: subscriptionRepo},
		Admin:         admin,
		Clock:         delegationpostgres.SystemClock{},
		Logger:        logger,
	})

	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	ledgerModule := provenance.NewModule(provenance.Dependencies{
		Repository:  ledgerRepo,
		Outbox:      ledgerRepo,
		Publisher:   nil,
		Authorizer:  resolverAuthorizer{check: resolverModule.CanPerform},
		Audit:       auditModule.Recorder,
		Clock:       ledgerpostgres.SystemClock{},
		IDGenerator: ledgerpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(
		directoryModule,
		subscriptionModule,
		delegationModule,
		resolverModule,
		ledgerModule,
		auditModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	grantRepo := delegationpostgres.NewRepository(pg.DB, logger)
	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		grantRelay: delegationworkers.OutboxRelay{
			Outbox:    grantRepo,
			Publisher: grantBusPublisher{bus: kafka},
			Clock:     delegationpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		packetRelay: ledgerworkers.OutboxRelay{
			Outbox:    ledgerRepo,
			Publisher: packetBusPublisher{bus: kafka},
			Clock:     ledgerpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		relayGrants:  cfg.EnableGrantOutboxRelay,
		relayPackets: cfg.EnablePacketOutboxRelay,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"relay_grants", w.relayGrants,
		"relay_packets", w.relayPackets,
	)

	for {
		if w.relayGrants {
			if err := w.grantRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.relayPackets {
			if err := w.packetRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
