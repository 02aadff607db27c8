package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	granterrors "meridian/contexts/access-control/delegation-service/domain/errors"
	granthttp "meridian/contexts/access-control/delegation-service/transport/http"
)

func (s *Server) handleCreateGrant(w http.ResponseWriter, r *http.Request) {
	grantorID := resolveOrgID(r)
	if grantorID == "" {
		writeGrantError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	var req granthttp.CreateGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGrantError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.grants.Handler.CreateHandler(r.Context(), grantorID, req)
	if err != nil {
		writeGrantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDecideGrant(w http.ResponseWriter, r *http.Request) {
	approverID := resolveOrgID(r)
	if approverID == "" {
		writeGrantError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	var req granthttp.DecideGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGrantError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.grants.Handler.DecideHandler(r.Context(), approverID, r.PathValue("grant_id"), req)
	if err != nil {
		writeGrantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevokeGrant(w http.ResponseWriter, r *http.Request) {
	actorID := resolveOrgID(r)
	if actorID == "" {
		writeGrantError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	resp, err := s.grants.Handler.RevokeHandler(r.Context(), actorID, r.PathValue("grant_id"))
	if err != nil {
		writeGrantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListGrants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.grants.Handler.ListHandler(
		r.Context(),
		query.Get("grantee_id"),
		query.Get("grantor_id"),
		queryFlag(r, "live_only"),
	)
	if err != nil {
		writeGrantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEffectiveCapabilities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.grants.Handler.EffectiveHandler(
		r.Context(),
		r.PathValue("grant_id"),
		query.Get("asset_id"),
		query.Get("type_tag"),
	)
	if err != nil {
		writeGrantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeGrantDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, granterrors.ErrInvalidGrantorID),
		errors.Is(err, granterrors.ErrInvalidGranteeID),
		errors.Is(err, granterrors.ErrSelfGrant),
		errors.Is(err, granterrors.ErrEmptyCapabilities),
		errors.Is(err, granterrors.ErrEmptyAssetScope),
		errors.Is(err, granterrors.ErrInvalidExpiry):
		writeGrantError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, granterrors.ErrGrantNotFound),
		errors.Is(err, granterrors.ErrAssetNotFound):
		writeGrantError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, granterrors.ErrInvalidTransition),
		errors.Is(err, granterrors.ErrGrantConcurrentUpdate):
		writeGrantError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, granterrors.ErrNotApprover),
		errors.Is(err, granterrors.ErrNotRevoker):
		writeGrantError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeGrantError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeGrantError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, granthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
