package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/repository"
	"github.com/google/uuid"
)

// CompanyResolver finds the single company an employer posts for.
type CompanyResolver struct {
	repo  repository.CompanyRepositoryIface
	cache *CacheService
}

func NewCompanyResolver(repo repository.CompanyRepositoryIface, cache *CacheService) *CompanyResolver {
	return &CompanyResolver{
		repo:  repo,
		cache: cache,
	}
}

// Resolve follows the employer's company link: the linked company id first,
// then an exact match on the stored company name. An employer without either
// gets domain.ErrCompanyRequired.
func (r *CompanyResolver) Resolve(ctx context.Context, employerID uuid.UUID) (*model.Company, error) {
	var company model.Company
	err := r.cache.GetOrSet(ctx, companyCacheKey(employerID), &company, func() (interface{}, error) {
		return r.resolve(ctx, employerID)
	})
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyResolver) resolve(ctx context.Context, employerID uuid.UUID) (*model.Company, error) {
	link, err := r.repo.FindEmployerLink(ctx, employerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCompanyRequired
		}
		return nil, fmt.Errorf("finding employer link: %w", err)
	}

	if link.CompanyID != nil {
		company, err := r.repo.FindByID(ctx, *link.CompanyID)
		if err == nil {
			return company, nil
		}
		if !errors.Is(err, domain.ErrCompanyNotFound) {
			return nil, err
		}
	}

	company, err := r.MatchByName(ctx, link.CompanyName)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return nil, domain.ErrCompanyRequired
		}
		return nil, err
	}
	return company, nil
}

// MatchByName returns the company whose name equals name exactly, ignoring
// surrounding whitespace.
func (r *CompanyResolver) MatchByName(ctx context.Context, name string) (*model.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrCompanyNotFound
	}
	return r.repo.FindByName(ctx, name)
}

func companyCacheKey(employerID uuid.UUID) string {
	return "company:employer:" + employerID.String()
}
