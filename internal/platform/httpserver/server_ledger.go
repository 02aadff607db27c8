package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	packeterrors "meridian/contexts/data-distribution/provenance-ledger/domain/errors"
	packethttp "meridian/contexts/data-distribution/provenance-ledger/transport/http"
)

func (s *Server) handlePublishPacket(w http.ResponseWriter, r *http.Request) {
	publisherID := resolveOrgID(r)
	if publisherID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	var req packethttp.PublishPacketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ledger.Handler.PublishHandler(r.Context(), publisherID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCorrectPacket(w http.ResponseWriter, r *http.Request) {
	actorID := resolveOrgID(r)
	if actorID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	var req packethttp.CorrectPacketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ledger.Handler.CorrectHandler(r.Context(), actorID, r.PathValue("packet_id"), req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	readerID := resolveOrgID(r)
	if readerID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	resp, err := s.ledger.Handler.MarkReadHandler(r.Context(), readerID, r.PathValue("packet_id"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPacket(w http.ResponseWriter, r *http.Request) {
	actorID := resolveOrgID(r)
	if actorID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	resp, err := s.ledger.Handler.GetHandler(r.Context(), actorID, r.PathValue("packet_id"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPackets(w http.ResponseWriter, r *http.Request) {
	actorID := resolveOrgID(r)
	if actorID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	query := r.URL.Query()
	resp, err := s.ledger.Handler.ListHandler(
		r.Context(),
		actorID,
		query.Get("asset_id"),
		query.Get("type"),
		queryFlag(r, "corrections_only"),
		queryFlag(r, "unread_only"),
	)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerifyPacket(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.VerifyHandler(r.Context(), r.PathValue("packet_id"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	actorID := resolveOrgID(r)
	if actorID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_org", "X-Org-Id header is required")
		return
	}

	resp, err := s.ledger.Handler.ReceiptsHandler(r.Context(), actorID, r.PathValue("packet_id"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, packeterrors.ErrInvalidAssetID),
		errors.Is(err, packeterrors.ErrInvalidPublisherID),
		errors.Is(err, packeterrors.ErrInvalidReaderID),
		errors.Is(err, packeterrors.ErrInvalidPacketType),
		errors.Is(err, packeterrors.ErrEmptyPayload):
		writeLedgerError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, packeterrors.ErrPacketNotFound):
		writeLedgerError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, packeterrors.ErrPermissionDenied):
		writeLedgerError(w, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, packeterrors.ErrCorrectionConflict):
		writeLedgerError(w, http.StatusConflict, "correction_conflict", err.Error())
	case errors.Is(err, packeterrors.ErrIntegrityViolation):
		// Tampering is surfaced distinctly, never as an ordinary fetch failure.
		writeLedgerError(w, http.StatusUnprocessableEntity, "integrity_violation", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, packethttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
