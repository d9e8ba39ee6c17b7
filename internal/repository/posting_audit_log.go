package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostingAuditLogRepositoryIface interface {
	Create(ctx context.Context, log *model.PostingAuditLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PostingAuditLog, error)
	Query(ctx context.Context, params QueryParams) ([]model.PostingAuditLog, int64, error)
}

// PostingAuditLogRepository stores the audit trail of posting writes
type PostingAuditLogRepository struct {
	db *gorm.DB
}

func NewPostingAuditLogRepository(db *gorm.DB) *PostingAuditLogRepository {
	return &PostingAuditLogRepository{
		db: db,
	}
}

// Create inserts a new audit log entry
func (r *PostingAuditLogRepository) Create(ctx context.Context, log *model.PostingAuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to create posting audit log: %w", err)
	}
	return nil
}

func (r *PostingAuditLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PostingAuditLog, error) {
	var log model.PostingAuditLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find posting audit log: %w", err)
	}
	return &log, nil
}

// QueryParams holds parameters for querying audit logs
type QueryParams struct {
	ActionType      string
	OpportunityType string
	OpportunityID   *uuid.UUID
	EmployerID      *uuid.UUID
	StartTime       time.Time
	EndTime         time.Time
	Limit           int
	Offset          int
}

// Query returns one page of matching entries, newest first, and the total
// number of matches.
func (r *PostingAuditLogRepository) Query(ctx context.Context, params QueryParams) ([]model.PostingAuditLog, int64, error) {
	var logs []model.PostingAuditLog
	var count int64

	query := r.db.WithContext(ctx).Model(&model.PostingAuditLog{})

	if params.ActionType != "" {
		query = query.Where("action_type = ?", params.ActionType)
	}
	if params.OpportunityType != "" {
		query = query.Where("opportunity_type = ?", params.OpportunityType)
	}
	if params.OpportunityID != nil {
		query = query.Where("opportunity_id = ?", *params.OpportunityID)
	}
	if params.EmployerID != nil {
		query = query.Where("employer_id = ?", *params.EmployerID)
	}
	if !params.StartTime.IsZero() {
		query = query.Where("timestamp >= ?", params.StartTime)
	}
	if !params.EndTime.IsZero() {
		query = query.Where("timestamp <= ?", params.EndTime)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posting audit logs: %w", err)
	}

	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	} else {
		query = query.Limit(100) // Default limit
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	if err := query.Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query posting audit logs: %w", err)
	}
	return logs, count, nil
}
