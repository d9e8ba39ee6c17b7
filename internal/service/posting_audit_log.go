package service

import (
	"context"
	"time"

	"github.com/dangerclosesec/jobdesk/internal/audit"
	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/repository"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Ensure PostingAuditLogService implements the audit.Logger interface
var _ audit.Logger = (*PostingAuditLogService)(nil)

// PostingAuditLogService records and queries the audit trail of posting
// writes.
type PostingAuditLogService struct {
	repo repository.PostingAuditLogRepositoryIface
}

func NewPostingAuditLogService(repo repository.PostingAuditLogRepositoryIface) *PostingAuditLogService {
	return &PostingAuditLogService{
		repo: repo,
	}
}

func (s *PostingAuditLogService) LogOpportunityCreate(
	ctx context.Context,
	employerID uuid.UUID,
	rec model.Opportunity,
	contextData map[string]interface{},
) error {
	return s.record(ctx, model.ActionOpportunityCreate, employerID, rec, contextData)
}

func (s *PostingAuditLogService) LogOpportunityUpdate(
	ctx context.Context,
	employerID uuid.UUID,
	rec model.Opportunity,
	contextData map[string]interface{},
) error {
	return s.record(ctx, model.ActionOpportunityUpdate, employerID, rec, contextData)
}

func (s *PostingAuditLogService) LogDraftSave(
	ctx context.Context,
	employerID uuid.UUID,
	rec model.Opportunity,
	contextData map[string]interface{},
) error {
	return s.record(ctx, model.ActionDraftSave, employerID, rec, contextData)
}

// LogReviewReset logs the critical fields whose change sent the posting back
// to review.
func (s *PostingAuditLogService) LogReviewReset(
	ctx context.Context,
	employerID uuid.UUID,
	rec model.Opportunity,
	changed []string,
) error {
	fields := make([]interface{}, len(changed))
	for i, name := range changed {
		fields[i] = name
	}
	return s.record(ctx, model.ActionReviewReset, employerID, rec, map[string]interface{}{
		"changed": fields,
	})
}

// ForOpportunity returns one page of the employer's audit trail of an
// opportunity, newest first.
func (s *PostingAuditLogService) ForOpportunity(ctx context.Context, employerID, id uuid.UUID, limit, offset int) ([]model.PostingAuditLog, int64, error) {
	return s.repo.Query(ctx, repository.QueryParams{
		OpportunityID: &id,
		EmployerID:    &employerID,
		Limit:         limit,
		Offset:        offset,
	})
}

// Query returns one page of an employer's audit trail. The employer filter
// always overrides params.
func (s *PostingAuditLogService) Query(ctx context.Context, employerID uuid.UUID, params repository.QueryParams) ([]model.PostingAuditLog, int64, error) {
	params.EmployerID = &employerID
	return s.repo.Query(ctx, params)
}

// Entry returns a single audit entry written for the employer.
func (s *PostingAuditLogService) Entry(ctx context.Context, employerID, id uuid.UUID) (*model.PostingAuditLog, error) {
	log, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if log.EmployerID != employerID {
		return nil, domain.ErrNotFound
	}
	return log, nil
}

func (s *PostingAuditLogService) record(
	ctx context.Context,
	action string,
	employerID uuid.UUID,
	rec model.Opportunity,
	contextData map[string]interface{},
) error {
	log := &model.PostingAuditLog{
		ActionType:      action,
		OpportunityType: rec.Type(),
		OpportunityID:   rec.Base().ID,
		EmployerID:      employerID,
		Context:         model.JSONMap(contextData),
		RequestID:       middleware.GetReqID(ctx),
		Timestamp:       time.Now().UTC(),
	}
	if job, ok := rec.(*model.ProfessionalJob); ok {
		verified := job.Verified
		log.Verified = &verified
	}

	return s.repo.Create(ctx, log)
}
