// internal/repository/opportunity.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OpportunityRepositoryIface reads and writes the four opportunity stores and
// the id to type index.
type OpportunityRepositoryIface interface {
	FindByID(ctx context.Context, t model.OpportunityType, id uuid.UUID) (model.Opportunity, error)
	LookupType(ctx context.Context, id uuid.UUID) (model.OpportunityType, error)
	IndexType(ctx context.Context, id uuid.UUID, t model.OpportunityType) error
	Create(ctx context.Context, rec model.Opportunity) error
	Update(ctx context.Context, rec model.Opportunity, expectedRevision int64) error
}

type OpportunityRepository struct {
	db *gorm.DB
}

func NewOpportunityRepository(db *gorm.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

// FindByID reads one record from the store of type t.
func (r *OpportunityRepository) FindByID(ctx context.Context, t model.OpportunityType, id uuid.UUID) (model.Opportunity, error) {
	rec, err := model.NewOpportunity(t)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).First(rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("finding %s: %w", t, err)
	}
	return rec, nil
}

// LookupType returns the store an id was indexed under.
func (r *OpportunityRepository) LookupType(ctx context.Context, id uuid.UUID) (model.OpportunityType, error) {
	var idx model.OpportunityIndex
	if err := r.db.WithContext(ctx).First(&idx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("looking up opportunity type: %w", err)
	}
	return idx.Type, nil
}

// IndexType records the store of an id. An existing entry is left alone.
func (r *OpportunityRepository) IndexType(ctx context.Context, id uuid.UUID, t model.OpportunityType) error {
	idx := &model.OpportunityIndex{ID: id, Type: t}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(idx).Error; err != nil {
		return fmt.Errorf("indexing opportunity: %w", err)
	}
	return nil
}

// Create inserts the record into its type's store together with its index
// entry.
func (r *OpportunityRepository) Create(ctx context.Context, rec model.Opportunity) error {
	base := rec.Base()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	base.Revision = 1

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("creating %s: %w", rec.Type(), err)
		}
		if err := tx.Create(&model.OpportunityIndex{ID: base.ID, Type: rec.Type()}).Error; err != nil {
			return fmt.Errorf("indexing %s: %w", rec.Type(), err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// Update overwrites the record if its stored revision still equals
// expectedRevision, and bumps the revision. A newer stored revision yields
// domain.ErrStaleRevision.
func (r *OpportunityRepository) Update(ctx context.Context, rec model.Opportunity, expectedRevision int64) error {
	target, err := model.NewOpportunity(rec.Type())
	if err != nil {
		return err
	}

	base := rec.Base()
	base.Revision = expectedRevision + 1

	result := r.db.WithContext(ctx).
		Model(target).
		Where("id = ? AND revision = ?", base.ID, expectedRevision).
		Select("*").
		Omit("id", "created_at").
		Updates(rec)
	if result.Error != nil {
		base.Revision = expectedRevision
		return fmt.Errorf("updating %s: %w", rec.Type(), result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	base.Revision = expectedRevision
	var count int64
	if err := r.db.WithContext(ctx).Model(target).Where("id = ?", base.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("checking %s: %w", rec.Type(), err)
	}
	if count == 0 {
		return domain.ErrOpportunityNotFound
	}
	return domain.ErrStaleRevision
}
