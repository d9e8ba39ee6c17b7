package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/handler"
	"github.com/dangerclosesec/jobdesk/internal/middleware"
	"github.com/dangerclosesec/jobdesk/internal/mocks"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/repository"
	"github.com/dangerclosesec/jobdesk/internal/service"
	"github.com/dangerclosesec/jobdesk/internal/session"
	"github.com/dangerclosesec/jobdesk/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type apiFixture struct {
	router      http.Handler
	companyRepo *mocks.MockCompanyRepositoryIface
	oppRepo     *mocks.MockOpportunityRepositoryIface
	auditRepo   *mocks.MockPostingAuditLogRepositoryIface
	employerID  uuid.UUID
	company     *model.Company
}

func newAPIFixture(t *testing.T, withCompany bool) *apiFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	fx := &apiFixture{
		companyRepo: mocks.NewMockCompanyRepositoryIface(ctrl),
		oppRepo:     mocks.NewMockOpportunityRepositoryIface(ctrl),
		auditRepo:   mocks.NewMockPostingAuditLogRepositoryIface(ctrl),
		employerID:  uuid.New(),
		company:     &model.Company{ID: uuid.New(), Name: "Acme"},
	}

	if withCompany {
		fx.companyRepo.EXPECT().
			FindEmployerLink(gomock.Any(), fx.employerID).
			Return(&model.EmployerCompanyLink{EmployerID: fx.employerID, CompanyID: &fx.company.ID}, nil).
			AnyTimes()
		fx.companyRepo.EXPECT().
			FindByID(gomock.Any(), fx.company.ID).
			Return(fx.company, nil).
			AnyTimes()
	} else {
		fx.companyRepo.EXPECT().
			FindEmployerLink(gomock.Any(), fx.employerID).
			Return(nil, domain.ErrNotFound).
			AnyTimes()
	}

	cache := service.NewCacheService(service.CacheConfig{TTL: time.Minute, CleanupFreq: time.Minute})
	resolver := service.NewCompanyResolver(fx.companyRepo, cache)
	auditService := service.NewPostingAuditLogService(fx.auditRepo)
	postings := service.NewPostingService(
		session.NewMemoryStore(time.Minute, time.Minute),
		resolver,
		service.NewRecordLoader(fx.oppRepo, resolver),
		service.NewGateway(fx.oppRepo),
		validation.New(),
		auditService,
	)

	postingHandler := handler.NewPostingHandler(postings)
	companyHandler := handler.NewCompanyHandler(resolver)
	auditHandler := handler.NewAuditLogHandler(auditService)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Anonymous") == "" {
				r = r.WithContext(middleware.WithEmployerID(r.Context(), fx.employerID))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Route("/postings", func(r chi.Router) {
		r.Route("/sessions", postingHandler.Routes)
		r.Get("/{id}/audit", auditHandler.ForOpportunity)
	})
	r.Get("/companies/mine", companyHandler.Mine)
	r.Get("/audit-logs", auditHandler.GetAuditLogs)
	r.Get("/audit-logs/{id}", auditHandler.GetAuditLogByID)
	fx.router = r
	return fx
}

func (fx *apiFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)
	return rec
}

type sessionBody struct {
	Ok             bool   `json:"ok"`
	ID             string `json:"id"`
	Type           string `json:"type"`
	Step           string `json:"step"`
	StepNumber     int    `json:"step_number"`
	CompanyMissing bool   `json:"company_missing"`
	SubmitDisabled bool   `json:"submit_disabled"`
	Form           struct {
		CompanyLocked bool `json:"company_locked"`
	} `json:"form"`
}

type errorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
	Code    string   `json:"error_code"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestPostingFlow(t *testing.T) {
	fx := newAPIFixture(t, true)
	fx.auditRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	rec := fx.do(t, http.MethodPost, "/postings/sessions", handler.StartSessionRequest{Type: model.TypeProfessionalJob})
	require.Equal(t, http.StatusCreated, rec.Code)
	sess := decode[sessionBody](t, rec)
	assert.True(t, sess.Ok)
	assert.Equal(t, "basic_info", sess.Step)
	assert.Equal(t, 1, sess.StepNumber)
	assert.False(t, sess.CompanyMissing)
	assert.True(t, sess.SubmitDisabled)

	base := "/postings/sessions/" + sess.ID

	t.Run("publish with missing fields", func(t *testing.T) {
		rec := fx.do(t, http.MethodPost, base+"/publish", nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decode[errorBody](t, rec)
		assert.Equal(t, "validation_failed", body.Code)
		assert.Equal(t, []string{"industry", "job_category", "title"}, body.Details)
	})

	t.Run("next blocked without a title", func(t *testing.T) {
		rec := fx.do(t, http.MethodPost, base+"/next", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	rec = fx.do(t, http.MethodPatch, base+"/fields", map[string]string{
		"title":        "Marketing Manager",
		"job_category": "Marketing",
		"industry":     "Retail",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[sessionBody](t, rec).SubmitDisabled)

	t.Run("company name is locked", func(t *testing.T) {
		rec := fx.do(t, http.MethodPatch, base+"/fields", map[string]string{"company_name": "Other"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("line edits", func(t *testing.T) {
		rec := fx.do(t, http.MethodPost, base+"/lists/description/lines", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = fx.do(t, http.MethodPut, base+"/lists/description/lines/1", handler.ValueRequest{Value: "Lead campaigns"})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = fx.do(t, http.MethodPut, base+"/lists/description/lines/9", handler.ValueRequest{Value: "x"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = fx.do(t, http.MethodDelete, base+"/lists/description/lines/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("navigation", func(t *testing.T) {
		rec := fx.do(t, http.MethodPost, base+"/next", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "impact", decode[sessionBody](t, rec).Step)

		rec = fx.do(t, http.MethodPost, base+"/back", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "basic_info", decode[sessionBody](t, rec).Step)
	})

	id := uuid.New()
	fx.oppRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec model.Opportunity) error {
			rec.Base().ID = id
			rec.Base().Revision = 1
			return nil
		})

	rec = fx.do(t, http.MethodPost, base+"/publish", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	saved := decode[struct {
		Ok       bool   `json:"ok"`
		ID       string `json:"id"`
		Created  bool   `json:"created"`
		Outcome  string `json:"review_outcome"`
		Verified *bool  `json:"verified"`
		Message  string `json:"message"`
	}](t, rec)
	assert.True(t, saved.Ok)
	assert.Equal(t, id.String(), saved.ID)
	assert.True(t, saved.Created)
	assert.Equal(t, "pending", saved.Outcome)
	require.NotNil(t, saved.Verified)
	assert.False(t, *saved.Verified)

	t.Run("stale revision", func(t *testing.T) {
		fx.oppRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), int64(1)).
			Return(domain.ErrStaleRevision)

		rec := fx.do(t, http.MethodPost, base+"/draft", nil)
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "stale_revision", decode[errorBody](t, rec).Code)
	})

	t.Run("discard", func(t *testing.T) {
		rec := fx.do(t, http.MethodDelete, base, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = fx.do(t, http.MethodGet, base, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestStartSessionForMissingOpportunity(t *testing.T) {
	fx := newAPIFixture(t, true)
	id := uuid.New()

	fx.oppRepo.EXPECT().LookupType(gomock.Any(), id).Return(model.OpportunityType(""), domain.ErrNotFound)
	for _, typ := range model.SearchOrder {
		fx.oppRepo.EXPECT().FindByID(gomock.Any(), typ, id).Return(nil, domain.ErrOpportunityNotFound)
	}

	rec := fx.do(t, http.MethodPost, "/postings/sessions", handler.StartSessionRequest{OpportunityID: &id})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostingWithoutCompany(t *testing.T) {
	fx := newAPIFixture(t, false)

	rec := fx.do(t, http.MethodPost, "/postings/sessions", handler.StartSessionRequest{Type: model.TypeInternship})
	require.Equal(t, http.StatusCreated, rec.Code)
	sess := decode[sessionBody](t, rec)
	assert.True(t, sess.CompanyMissing)
	assert.False(t, sess.Form.CompanyLocked)

	rec = fx.do(t, http.MethodPatch, "/postings/sessions/"+sess.ID+"/fields", map[string]string{"title": "Summer Intern"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = fx.do(t, http.MethodPost, "/postings/sessions/"+sess.ID+"/publish", nil)
	require.Equal(t, http.StatusPreconditionFailed, rec.Code)
	assert.Equal(t, "company_required", decode[errorBody](t, rec).Code)

	t.Run("company lookup", func(t *testing.T) {
		rec := fx.do(t, http.MethodGet, "/companies/mine", nil)
		assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	})
}

func TestSessionBelongsToEmployer(t *testing.T) {
	fx := newAPIFixture(t, true)

	rec := fx.do(t, http.MethodPost, "/postings/sessions", handler.StartSessionRequest{Type: model.TypeGraduateProgram})
	require.Equal(t, http.StatusCreated, rec.Code)
	sess := decode[sessionBody](t, rec)

	other := newAPIFixture(t, true)
	rec = other.do(t, http.MethodGet, "/postings/sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/postings/sessions/"+sess.ID, nil)
	req.Header.Set("X-Anonymous", "1")
	anon := httptest.NewRecorder()
	fx.router.ServeHTTP(anon, req)
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
}

func TestCompanyMine(t *testing.T) {
	fx := newAPIFixture(t, true)

	rec := fx.do(t, http.MethodGet, "/companies/mine", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[handler.CompanyResponse](t, rec)
	require.NotNil(t, body.Company)
	assert.Equal(t, fx.company.ID, body.Company.ID)
}

func TestAuditLogs(t *testing.T) {
	fx := newAPIFixture(t, true)
	oppID := uuid.New()

	fx.auditRepo.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params repository.QueryParams) ([]model.PostingAuditLog, int64, error) {
			require.NotNil(t, params.EmployerID)
			assert.Equal(t, fx.employerID, *params.EmployerID)
			require.NotNil(t, params.OpportunityID)
			assert.Equal(t, oppID, *params.OpportunityID)
			assert.Equal(t, 10, params.Limit)
			return []model.PostingAuditLog{{ActionType: model.ActionOpportunityCreate}}, 1, nil
		})

	rec := fx.do(t, http.MethodGet, "/audit-logs?opportunity_id="+oppID.String()+"&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[handler.AuditLogsResponse](t, rec)
	assert.Equal(t, int64(1), body.Total)
	assert.Len(t, body.Logs, 1)

	t.Run("trail of one opportunity", func(t *testing.T) {
		fx.auditRepo.EXPECT().
			Query(gomock.Any(), repository.QueryParams{OpportunityID: &oppID, EmployerID: &fx.employerID, Offset: 5}).
			Return(nil, int64(0), nil)

		rec := fx.do(t, http.MethodGet, "/postings/"+oppID.String()+"/audit?offset=5&limit=x", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[handler.AuditLogsResponse](t, rec)
		assert.NotNil(t, body.Logs)
		assert.Empty(t, body.Logs)
	})

	t.Run("bad opportunity id", func(t *testing.T) {
		rec := fx.do(t, http.MethodGet, "/audit-logs?opportunity_id=nope", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("entry of another employer", func(t *testing.T) {
		id := uuid.New()
		fx.auditRepo.EXPECT().
			FindByID(gomock.Any(), id).
			Return(&model.PostingAuditLog{ID: id, EmployerID: uuid.New()}, nil)

		rec := fx.do(t, http.MethodGet, "/audit-logs/"+id.String(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
