package handler

import (
	"net/http"

	"github.com/dangerclosesec/jobdesk/internal/form"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/review"
	"github.com/dangerclosesec/jobdesk/internal/service"
	"github.com/dangerclosesec/jobdesk/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PostingHandler exposes the authoring workflow.
type PostingHandler struct {
	service *service.PostingService
}

func NewPostingHandler(service *service.PostingService) *PostingHandler {
	return &PostingHandler{
		service: service,
	}
}

// Routes mounts the session endpoints.
func (h *PostingHandler) Routes(r chi.Router) {
	r.Post("/", h.StartSession)
	r.Route("/{sid}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Delete("/", h.DiscardSession)
		r.Put("/type", h.SwitchType)
		r.Patch("/fields", h.SetFields)

		r.Put("/lists/{list}", h.SetListText)
		r.Post("/lists/{list}/lines", h.AddLine)
		r.Put("/lists/{list}/lines/{index}", h.SetLine)
		r.Delete("/lists/{list}/lines/{index}", h.RemoveLine)

		r.Post("/operations", h.AddGroup)
		r.Put("/operations/{group}", h.SetHeading)
		r.Delete("/operations/{group}", h.RemoveGroup)
		r.Post("/operations/{group}/items", h.AddItem)
		r.Put("/operations/{group}/items/{index}", h.SetItem)
		r.Delete("/operations/{group}/items/{index}", h.RemoveItem)

		r.Post("/next", h.Next)
		r.Post("/back", h.Back)
		r.Post("/publish", h.Publish)
		r.Post("/draft", h.SaveDraft)
	})
}

type StartSessionRequest struct {
	Type          model.OpportunityType `json:"type"`
	OpportunityID *uuid.UUID            `json:"opportunity_id,omitempty"`
}

type SwitchTypeRequest struct {
	Type model.OpportunityType `json:"type"`
}

type TextRequest struct {
	Text string `json:"text"`
}

type ValueRequest struct {
	Value string `json:"value"`
}

type HeadingRequest struct {
	Heading string `json:"heading"`
}

// SessionResponse is the state of an authoring session.
type SessionResponse struct {
	BaseResponse
	ID             string                `json:"id"`
	Type           model.OpportunityType `json:"type"`
	Step           string                `json:"step"`
	StepNumber     int                   `json:"step_number"`
	Form           *form.Form            `json:"form"`
	OpportunityID  *uuid.UUID            `json:"opportunity_id,omitempty"`
	Revision       int64                 `json:"revision,omitempty"`
	Company        *model.Company        `json:"company,omitempty"`
	CompanyMissing bool                  `json:"company_missing"`
	WasVerified    bool                  `json:"was_verified"`
	CriticalFields []string              `json:"critical_fields,omitempty"`
	SubmitDisabled bool                  `json:"submit_disabled"`
}

type SaveResponse struct {
	BaseResponse
	*service.SaveResult
}

func (h *PostingHandler) view(sess *session.Session) SessionResponse {
	return SessionResponse{
		BaseResponse:   BaseResponse{Ok: true},
		ID:             sess.ID,
		Type:           sess.Form.Type,
		Step:           sess.Step.String(),
		StepNumber:     int(sess.Step),
		Form:           sess.Form,
		OpportunityID:  sess.ExistingID,
		Revision:       sess.Revision,
		Company:        sess.Company,
		CompanyMissing: sess.Company == nil,
		WasVerified:    sess.WasVerified,
		CriticalFields: review.CriticalFields(sess.Form.Type),
		SubmitDisabled: h.service.SubmitDisabled(sess),
	}
}

// StartSession opens a session for a new posting or for editing one.
func (h *PostingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}

	var req StartSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.OpportunityID == nil && req.Type == "" {
		req.Type = model.TypeProfessionalJob
	}

	sess, err := h.service.StartSession(r.Context(), eid, req.Type, req.OpportunityID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, h.view(sess))
}

func (h *PostingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	sess, err := h.service.Session(r.Context(), eid, chi.URLParam(r, "sid"))
	h.respondSession(w, r, sess, err)
}

// DiscardSession drops the session. Saved records are kept.
func (h *PostingHandler) DiscardSession(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	if err := h.service.Discard(r.Context(), eid, chi.URLParam(r, "sid")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PostingHandler) SwitchType(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	var req SwitchTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.service.SwitchType(r.Context(), eid, chi.URLParam(r, "sid"), req.Type)
	h.respondSession(w, r, sess, err)
}

// SetFields assigns scalar fields from a JSON object of names to values.
func (h *PostingHandler) SetFields(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	var values map[string]string
	if !decodeJSON(w, r, &values) {
		return
	}
	sess, err := h.service.SetFields(r.Context(), eid, chi.URLParam(r, "sid"), values)
	h.respondSession(w, r, sess, err)
}

func (h *PostingHandler) SetListText(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	var req TextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.service.SetListText(r.Context(), eid, chi.URLParam(r, "sid"), chi.URLParam(r, "list"), req.Text)
	h.respondSession(w, r, sess, err)
}

func (h *PostingHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	sess, err := h.service.AddLine(r.Context(), eid, chi.URLParam(r, "sid"), chi.URLParam(r, "list"))
	h.respondSession(w, r, sess, err)
}

func (h *PostingHandler) SetLine(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	index, ok := intParam(w, chi.URLParam(r, "index"), "line index")
	if !ok {
		return
	}
	var req ValueRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.service.SetLine(r.Context(), eid, chi.URLParam(r, "sid"), chi.URLParam(r, "list"), index, req.Value)
	h.respondSession(w, r, sess, err)
}

func (h *PostingHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	index, ok := intParam(w, chi.URLParam(r, "index"), "line index")
	if !ok {
		return
	}
	sess, err := h.service.RemoveLine(r.Context(), eid, chi.URLParam(r, "sid"), chi.URLParam(r, "list"), index)
	h.respondSession(w, r, sess, err)
}

func (h *PostingHandler) AddGroup(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	sess, err := h.service.AddGroup(r.Context(), eid, chi.URLParam(r, "sid"))
	h.respondSession(w, r, sess, err)
}

func (h *PostingHandler) SetHeading(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	group, ok := intParam(w, chi.URLParam(r, "group"), "group index")
	if !ok {
		return
	}
	var req HeadingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.service.SetHeading(r.Context(), eid, chi.URLParam(r, "sid"), group, req.Heading)
	h.respondSession(w, r, sess, err)
}

func (h *PostingHandler) RemoveGroup(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	group, ok := intParam(w, chi.URLParam(r, "group"), "group index")
	if !ok {
		return
	}
	sess, err := h.service.RemoveGroup(r.Context(), eid, chi.URLParam(r, "sid"), group)
	h.respondSession(w, r, sess, err)
}

func (h *PostingHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	group, ok := intParam(w, chi.URLParam(r, "group"), "group index")
	if !ok {
		return
	}
	sess, err := h.service.AddItem(r.Context(), eid, chi.URLParam(r, "sid"), group)
	h.respondSession(w, r, sess, err)
}

func (h *PostingHandler) SetItem(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	group, ok := intParam(w, chi.URLParam(r, "group"), "group index")
	if !ok {
		return
	}
	index, ok := intParam(w, chi.URLParam(r, "index"), "item index")
	if !ok {
		return
	}
	var req ValueRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.service.SetItem(r.Context(), eid, chi.URLParam(r, "sid"), group, index, req.Value)
	h.respondSession(w, r, sess, err)
}

func (h *PostingHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	group, ok := intParam(w, chi.URLParam(r, "group"), "group index")
	if !ok {
		return
	}
	index, ok := intParam(w, chi.URLParam(r, "index"), "item index")
	if !ok {
		return
	}
	sess, err := h.service.RemoveItem(r.Context(), eid, chi.URLParam(r, "sid"), group, index)
	h.respondSession(w, r, sess, err)
}

func (h *PostingHandler) Next(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	sess, err := h.service.Next(r.Context(), eid, chi.URLParam(r, "sid"))
	h.respondSession(w, r, sess, err)
}

func (h *PostingHandler) Back(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	sess, err := h.service.Back(r.Context(), eid, chi.URLParam(r, "sid"))
	h.respondSession(w, r, sess, err)
}

func (h *PostingHandler) Publish(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	res, err := h.service.Publish(r.Context(), eid, chi.URLParam(r, "sid"))
	h.respondSave(w, r, res, err)
}

func (h *PostingHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}
	res, err := h.service.SaveDraft(r.Context(), eid, chi.URLParam(r, "sid"))
	h.respondSave(w, r, res, err)
}

func (h *PostingHandler) respondSession(w http.ResponseWriter, r *http.Request, sess *session.Session, err error) {
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.view(sess))
}

func (h *PostingHandler) respondSave(w http.ResponseWriter, r *http.Request, res *service.SaveResult, err error) {
	if err != nil {
		handleError(w, r, err)
		return
	}
	code := http.StatusOK
	if res.Created {
		code = http.StatusCreated
	}
	respondWithJSON(w, code, SaveResponse{BaseResponse: BaseResponse{Ok: true}, SaveResult: res})
}
