package httpserver

import (
	"net/http"
	"strconv"

	auditqueries "meridian/contexts/governance/audit-service/application/queries"
	auditentities "meridian/contexts/governance/audit-service/domain/entities"
)

type auditEntriesResponse struct {
	Entries []auditentities.AuditEntry `json:"entries"`
}

func (s *Server) handleListAuditEntries(w http.ResponseWriter, r *http.Request) {
	actorID := resolveOrgID(r)
	if actorID == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	// The audit surface is platform-admin only.
	admin, err := s.resolver.CanPerform.Admin.IsAdmin(r.Context(), actorID)
	if err != nil {
		writeAccessError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	if !admin {
		writeAccessError(w, http.StatusForbidden, "forbidden", "audit entries require admin:all")
		return
	}

	query := r.URL.Query()
	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeAccessError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	entries, err := s.audit.ListEntries.Execute(r.Context(), auditqueries.ListEntriesQuery{
		ActorID:      query.Get("actor_id"),
		ResourceType: query.Get("resource_type"),
		ResourceID:   query.Get("resource_id"),
		Limit:        limit,
	})
	if err != nil {
		writeAccessError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, auditEntriesResponse{Entries: entries})
}
