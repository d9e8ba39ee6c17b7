package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/repository"
	"github.com/dangerclosesec/jobdesk/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AuditLogHandler serves the employer's posting audit trail
type AuditLogHandler struct {
	auditLogService *service.PostingAuditLogService
}

func NewAuditLogHandler(auditLogService *service.PostingAuditLogService) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogService: auditLogService,
	}
}

type AuditLogsResponse struct {
	BaseResponse
	Logs  []model.PostingAuditLog `json:"logs"`
	Total int64                   `json:"total"`
}

// GetAuditLogs handles requests to retrieve audit logs with filtering
func (h *AuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	params := repository.QueryParams{
		ActionType:      q.Get("action_type"),
		OpportunityType: q.Get("opportunity_type"),
	}

	if idStr := q.Get("opportunity_id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
			return
		}
		params.OpportunityID = &id
	}

	if startTimeStr := q.Get("start_time"); startTimeStr != "" {
		startTime, err := time.Parse(time.RFC3339, startTimeStr)
		if err == nil {
			params.StartTime = startTime
		}
	}
	if endTimeStr := q.Get("end_time"); endTimeStr != "" {
		endTime, err := time.Parse(time.RFC3339, endTimeStr)
		if err == nil {
			params.EndTime = endTime
		}
	}

	params.Limit, params.Offset = pagination(r)

	logs, total, err := h.auditLogService.Query(r.Context(), eid, params)
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.respondLogs(w, logs, total)
}

// ForOpportunity serves the audit trail of one opportunity.
func (h *AuditLogHandler) ForOpportunity(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID format")
		return
	}

	limit, offset := pagination(r)
	logs, total, err := h.auditLogService.ForOpportunity(r.Context(), eid, id, limit, offset)
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.respondLogs(w, logs, total)
}

// GetAuditLogByID handles requests to retrieve a specific audit log by ID
func (h *AuditLogHandler) GetAuditLogByID(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid audit log ID format")
		return
	}

	log, err := h.auditLogService.Entry(r.Context(), eid, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, log)
}

func (h *AuditLogHandler) respondLogs(w http.ResponseWriter, logs []model.PostingAuditLog, total int64) {
	if logs == nil {
		logs = []model.PostingAuditLog{}
	}
	respondWithJSON(w, http.StatusOK, AuditLogsResponse{
		BaseResponse: BaseResponse{Ok: true},
		Logs:         logs,
		Total:        total,
	})
}

// pagination reads limit and offset, ignoring malformed values.
func pagination(r *http.Request) (limit, offset int) {
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
