package handler

import (
	"net/http"

	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/service"
)

type CompanyHandler struct {
	resolver *service.CompanyResolver
}

func NewCompanyHandler(resolver *service.CompanyResolver) *CompanyHandler {
	return &CompanyHandler{
		resolver: resolver,
	}
}

type CompanyResponse struct {
	BaseResponse
	Company *model.Company `json:"company"`
}

// Mine returns the company that postings of the caller are locked to.
func (h *CompanyHandler) Mine(w http.ResponseWriter, r *http.Request) {
	eid, ok := employerID(w, r)
	if !ok {
		return
	}

	company, err := h.resolver.Resolve(r.Context(), eid)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, CompanyResponse{
		BaseResponse: BaseResponse{Ok: true},
		Company:      company,
	})
}
