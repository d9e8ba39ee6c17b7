// internal/repository/company.go
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

type CompanyRepositoryIface interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	FindByName(ctx context.Context, name string) (*model.Company, error)
	List(ctx context.Context, filter CompanyFilter) ([]model.Company, error)
	FindEmployerLink(ctx context.Context, employerID uuid.UUID) (*model.EmployerCompanyLink, error)
}

// CompanyFilter narrows List. Zero fields do not filter.
type CompanyFilter struct {
	Name     string
	Industry string
	Limit    int
}

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *model.Company) error {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return fmt.Errorf("creating company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("finding company: %w", err)
	}
	return &company, nil
}

// FindByName returns the oldest company whose name matches exactly.
func (r *CompanyRepository) FindByName(ctx context.Context, name string) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("created_at").First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("finding company by name: %w", err)
	}
	return &company, nil
}

func (r *CompanyRepository) List(ctx context.Context, filter CompanyFilter) ([]model.Company, error) {
	query := r.db.WithContext(ctx).Model(&model.Company{})
	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}
	if filter.Industry != "" {
		query = query.Where("industry = ?", filter.Industry)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(100) // Default limit
	}

	var companies []model.Company
	if err := query.Order("name").Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	return companies, nil
}

func (r *CompanyRepository) FindEmployerLink(ctx context.Context, employerID uuid.UUID) (*model.EmployerCompanyLink, error) {
	var link model.EmployerCompanyLink
	if err := r.db.WithContext(ctx).First(&link, "employer_id = ?", employerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("finding employer company link: %w", err)
	}
	return &link, nil
}

// SaveEmployerLink creates or replaces the link of an employer.
func (r *CompanyRepository) SaveEmployerLink(ctx context.Context, link *model.EmployerCompanyLink) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"company_id", "company_name", "updated_at"}),
	}).Create(link).Error
	if err != nil {
		return fmt.Errorf("saving employer company link: %w", err)
	}
	return nil
}
