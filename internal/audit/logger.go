package audit

import (
	"context"

	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/google/uuid"
)

// Logger defines the interface for auditing posting writes
type Logger interface {
	// LogOpportunityCreate logs the first save of a published opportunity
	LogOpportunityCreate(
		ctx context.Context,
		employerID uuid.UUID,
		rec model.Opportunity,
		contextData map[string]interface{},
	) error

	// LogOpportunityUpdate logs a published save of an existing opportunity
	LogOpportunityUpdate(
		ctx context.Context,
		employerID uuid.UUID,
		rec model.Opportunity,
		contextData map[string]interface{},
	) error

	// LogDraftSave logs a save with is_draft set
	LogDraftSave(
		ctx context.Context,
		employerID uuid.UUID,
		rec model.Opportunity,
		contextData map[string]interface{},
	) error

	// LogReviewReset logs an approved posting sent back to review
	LogReviewReset(
		ctx context.Context,
		employerID uuid.UUID,
		rec model.Opportunity,
		changed []string,
	) error
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

func (l *NoOpLogger) LogOpportunityCreate(ctx context.Context, employerID uuid.UUID, rec model.Opportunity, contextData map[string]interface{}) error {
	return nil
}

func (l *NoOpLogger) LogOpportunityUpdate(ctx context.Context, employerID uuid.UUID, rec model.Opportunity, contextData map[string]interface{}) error {
	return nil
}

func (l *NoOpLogger) LogDraftSave(ctx context.Context, employerID uuid.UUID, rec model.Opportunity, contextData map[string]interface{}) error {
	return nil
}

func (l *NoOpLogger) LogReviewReset(ctx context.Context, employerID uuid.UUID, rec model.Opportunity, changed []string) error {
	return nil
}
