package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	accessresolver "meridian/contexts/access-control/access-resolver"
	delegation "meridian/contexts/access-control/delegation-service"
	provenance "meridian/contexts/data-distribution/provenance-ledger"
	directory "meridian/contexts/fund-network/directory-service"
	subscription "meridian/contexts/fund-network/subscription-service"
	audit "meridian/contexts/governance/audit-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "meridian/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	directory     directory.Module
	subscriptions subscription.Module
	grants        delegation.Module
	resolver      accessresolver.Module
	ledger        provenance.Module
	audit         audit.Module
}

func New(
	directoryModule directory.Module,
	subscriptionModule subscription.Module,
	delegationModule delegation.Module,
	resolverModule accessresolver.Module,
	ledgerModule provenance.Module,
	auditModule audit.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		directory:     directoryModule,
		subscriptions: subscriptionModule,
		grants:        delegationModule,
		resolver:      resolverModule,
		ledger:        ledgerModule,
		audit:         auditModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/network/v1/subscriptions/invite", s.handleInviteSubscriber)
	s.mux.HandleFunc("POST /api/network/v1/subscriptions/request", s.handleRequestAccess)
	s.mux.HandleFunc("POST /api/network/v1/subscriptions/{subscription_id}/respond", s.handleRespondSubscription)
	s.mux.HandleFunc("GET /api/network/v1/subscriptions", s.handleListSubscriptions)

	s.mux.HandleFunc("POST /api/grants/v1/grants", s.handleCreateGrant)
	s.mux.HandleFunc("POST /api/grants/v1/grants/{grant_id}/decide", s.handleDecideGrant)
	s.mux.HandleFunc("POST /api/grants/v1/grants/{grant_id}/revoke", s.handleRevokeGrant)
	s.mux.HandleFunc("GET /api/grants/v1/grants", s.handleListGrants)
	s.mux.HandleFunc("GET /api/grants/v1/grants/{grant_id}/effective", s.handleEffectiveCapabilities)

	s.mux.HandleFunc("GET /api/access/v1/check", s.handleAccessCheck)
	s.mux.HandleFunc("GET /api/access/v1/assets/{asset_id}/subscribers", s.handleVisibleSubscribers)

	s.mux.HandleFunc("POST /api/ledger/v1/packets", s.handlePublishPacket)
	s.mux.HandleFunc("POST /api/ledger/v1/packets/{packet_id}/corrections", s.handleCorrectPacket)
	s.mux.HandleFunc("POST /api/ledger/v1/packets/{packet_id}/read", s.handleMarkRead)
	s.mux.HandleFunc("GET /api/ledger/v1/packets", s.handleListPackets)
	s.mux.HandleFunc("GET /api/ledger/v1/packets/{packet_id}", s.handleGetPacket)
	s.mux.HandleFunc("GET /api/ledger/v1/packets/{packet_id}/verify", s.handleVerifyPacket)
	s.mux.HandleFunc("GET /api/ledger/v1/packets/{packet_id}/receipts", s.handleListReceipts)

	s.mux.HandleFunc("GET /api/audit/v1/entries", s.handleListAuditEntries)
}

// resolveOrgID identifies the acting organization. Authentication happens at
// the gateway; this layer trusts the forwarded identity header.
func resolveOrgID(r *http.Request) string {
	if fromHeader := strings.TrimSpace(r.Header.Get("X-Org-Id")); fromHeader != "" {
		return fromHeader
	}
	return strings.TrimSpace(r.Header.Get("X-Subject-Id"))
}

func queryFlag(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
