package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/middleware"
	"github.com/dangerclosesec/jobdesk/internal/validation"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ErrorResponse struct { // TypeGen: ErrorResponse
	BaseResponse
	Error   string    `json:"error"`
	Details *[]string `json:"details,omitempty"`
	Code    *string   `json:"error_code,omitempty"`
	Link    *string   `json:"error_link,omitempty"`
}

type BaseResponse struct { // TypeGen: DefaultResponse
	Ok bool `json:"ok"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithErrorCode sends an error response with a machine readable code
// and optional details.
func respondWithErrorCode(w http.ResponseWriter, code int, message, errCode string, details []string) {
	resp := ErrorResponse{Error: message, Code: &errCode}
	if len(details) > 0 {
		resp.Details = &details
	}
	respondWithJSON(w, code, resp)
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleError maps domain errors to HTTP responses.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		respondWithErrorCode(w, http.StatusUnprocessableEntity, domain.ErrValidation.Error(), "validation_failed", verr.Missing)
	case errors.Is(err, domain.ErrValidation):
		respondWithErrorCode(w, http.StatusUnprocessableEntity, err.Error(), "validation_failed", nil)
	case errors.Is(err, domain.ErrCompanyRequired):
		respondWithErrorCode(w, http.StatusPreconditionFailed, domain.ErrCompanyRequired.Error(), "company_required", nil)
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrOpportunityNotFound),
		errors.Is(err, domain.ErrCompanyNotFound),
		errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrStaleRevision):
		respondWithErrorCode(w, http.StatusConflict, domain.ErrStaleRevision.Error(), "stale_revision", nil)
	case errors.Is(err, domain.ErrActionInFlight):
		respondWithErrorCode(w, http.StatusConflict, err.Error(), "in_flight", nil)
	case errors.Is(err, domain.ErrCompanyLocked),
		errors.Is(err, domain.ErrFieldNotApplicable),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrIndexOutOfRange),
		errors.Is(err, domain.ErrInvalidOpportunityType),
		errors.Is(err, domain.ErrInvalidStep),
		errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err, "requestID", chimw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// employerID reads the authenticated employer, answering 401 when absent.
func employerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.EmployerID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return id, ok
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

func intParam(w http.ResponseWriter, raw, name string) (int, bool) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return v, true
}
