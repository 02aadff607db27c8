package httpserver

import (
	"net/http"

	accesshttp "meridian/contexts/access-control/access-resolver/transport/http"
)

func (s *Server) handleAccessCheck(w http.ResponseWriter, r *http.Request) {
	actorID := resolveOrgID(r)
	if actorID == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	query := r.URL.Query()
	resp, err := s.resolver.Handler.CheckHandler(
		r.Context(),
		actorID,
		query.Get("asset_id"),
		query.Get("type_tag"),
		query.Get("action"),
	)
	if err != nil {
		writeAccessError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVisibleSubscribers(w http.ResponseWriter, r *http.Request) {
	actorID := resolveOrgID(r)
	if actorID == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	resp, err := s.resolver.Handler.SubscribersHandler(r.Context(), actorID, r.PathValue("asset_id"))
	if err != nil {
		writeAccessError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAccessError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accesshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
