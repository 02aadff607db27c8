package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	subscriptionerrors "meridian/contexts/fund-network/subscription-service/domain/errors"
	subscriptionhttp "meridian/contexts/fund-network/subscription-service/transport/http"
)

func (s *Server) handleInviteSubscriber(w http.ResponseWriter, r *http.Request) {
	managerID := resolveOrgID(r)
	if managerID == "" {
		writeSubscriptionError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	var req subscriptionhttp.InviteSubscriberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubscriptionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.subscriptions.Handler.InviteHandler(r.Context(), managerID, req)
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRequestAccess(w http.ResponseWriter, r *http.Request) {
	subscriberID := resolveOrgID(r)
	if subscriberID == "" {
		writeSubscriptionError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	var req subscriptionhttp.RequestAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubscriptionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.subscriptions.Handler.RequestHandler(r.Context(), subscriberID, req)
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRespondSubscription(w http.ResponseWriter, r *http.Request) {
	actorID := resolveOrgID(r)
	if actorID == "" {
		writeSubscriptionError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	var req subscriptionhttp.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubscriptionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.subscriptions.Handler.RespondHandler(r.Context(), actorID, r.PathValue("subscription_id"), req)
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.subscriptions.Handler.ListHandler(
		r.Context(),
		query.Get("asset_id"),
		query.Get("subscriber_id"),
		queryFlag(r, "active_only"),
	)
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeSubscriptionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, subscriptionerrors.ErrInvalidAssetID),
		errors.Is(err, subscriptionerrors.ErrInvalidSubscriberID),
		errors.Is(err, subscriptionerrors.ErrInvalidActorID):
		writeSubscriptionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, subscriptionerrors.ErrAssetNotFound),
		errors.Is(err, subscriptionerrors.ErrSubscriptionNotFound):
		writeSubscriptionError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, subscriptionerrors.ErrSubscriptionAlreadyExists),
		errors.Is(err, subscriptionerrors.ErrInvalidTransition):
		writeSubscriptionError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, subscriptionerrors.ErrNotCounterparty),
		errors.Is(err, subscriptionerrors.ErrNotAssetManager):
		writeSubscriptionError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeSubscriptionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSubscriptionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, subscriptionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
