package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/repository"
	"github.com/google/uuid"
)

type companyMatcher interface {
	MatchByName(ctx context.Context, name string) (*model.Company, error)
}

// LoadedOpportunity is a stored opportunity ready for editing.
type LoadedOpportunity struct {
	Record model.Opportunity
	Type   model.OpportunityType
	// Company is set when the record's company was recovered by name.
	Company *model.Company
}

// RecordLoader finds an opportunity whose type is not known to the caller.
type RecordLoader struct {
	repo      repository.OpportunityRepositoryIface
	companies companyMatcher
}

func NewRecordLoader(repo repository.OpportunityRepositoryIface, companies companyMatcher) *RecordLoader {
	return &RecordLoader{
		repo:      repo,
		companies: companies,
	}
}

// Load reads the opportunity with the given id. The id to type index is
// consulted first. Ids missing from the index are searched in model.SearchOrder
// and indexed once found.
func (l *RecordLoader) Load(ctx context.Context, id uuid.UUID) (*LoadedOpportunity, error) {
	rec, err := l.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	loaded := &LoadedOpportunity{Record: rec, Type: rec.Type()}
	l.backfillCompany(ctx, loaded)
	return loaded, nil
}

func (l *RecordLoader) lookup(ctx context.Context, id uuid.UUID) (model.Opportunity, error) {
	t, err := l.repo.LookupType(ctx, id)
	switch {
	case err == nil:
		rec, err := l.repo.FindByID(ctx, t, id)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, domain.ErrOpportunityNotFound) {
			return nil, err
		}
		slog.WarnContext(ctx, "Opportunity index points at a missing record", "id", id, "type", t)
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("looking up opportunity %s: %w", id, err)
	}

	rec, err := l.search(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := l.repo.IndexType(ctx, id, rec.Type()); err != nil {
		slog.WarnContext(ctx, "Failed to index opportunity", "error", err, "id", id, "type", rec.Type())
	}
	return rec, nil
}

func (l *RecordLoader) search(ctx context.Context, id uuid.UUID) (model.Opportunity, error) {
	for _, t := range model.SearchOrder {
		rec, err := l.repo.FindByID(ctx, t, id)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, domain.ErrOpportunityNotFound) {
			return nil, err
		}
	}
	return nil, domain.ErrOpportunityNotFound
}

// backfillCompany recovers the company id and logo of records that only
// stored a company name. A miss leaves the record as it is.
func (l *RecordLoader) backfillCompany(ctx context.Context, loaded *LoadedOpportunity) {
	p := loaded.Record.Base()
	if p.CompanyID != nil || p.CompanyName == "" {
		return
	}

	company, err := l.companies.MatchByName(ctx, p.CompanyName)
	if err != nil {
		if !errors.Is(err, domain.ErrCompanyNotFound) {
			slog.WarnContext(ctx, "Failed to match company by name", "error", err, "company", p.CompanyName)
		}
		return
	}

	id := company.ID
	p.CompanyID = &id
	if company.LogoURL != "" {
		p.CompanyLogoURL = company.LogoURL
	}
	loaded.Company = company
}
