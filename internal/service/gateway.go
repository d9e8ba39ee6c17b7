package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/dangerclosesec/jobdesk/internal/form"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/microcosm-cc/bluemonday"
)

// Gateway turns forms into records and writes them to the store of their
// type.
type Gateway struct {
	repo   repository.OpportunityRepositoryIface
	policy *bluemonday.Policy
}

func NewGateway(repo repository.OpportunityRepositoryIface) *Gateway {
	return &Gateway{
		repo:   repo,
		policy: bluemonday.StrictPolicy(),
	}
}

// Build converts f into the record of its type. Lists lose their empty
// lines, markup is stripped from every text value, and an untitled draft is
// named after its type.
func (g *Gateway) Build(f *form.Form, isDraft bool) (model.Opportunity, error) {
	if err := f.Check(); err != nil {
		return nil, err
	}
	rec, err := model.NewOpportunity(f.Type)
	if err != nil {
		return nil, err
	}

	c := f.Common
	p := rec.Base()
	p.Title = g.clean(c.Title)
	if isDraft && p.Title == "" {
		p.Title = fmt.Sprintf("Untitled %s Draft", f.Type.Label())
	}
	p.CompanyName = g.clean(c.CompanyName)
	if c.CompanyID != nil {
		id := *c.CompanyID
		p.CompanyID = &id
	}
	p.CompanyLogoURL = g.clean(c.CompanyLogoURL)
	p.ImageURL = g.clean(c.ImageURL)
	p.ApplicationURL = g.clean(c.ApplicationURL)
	p.Region = g.clean(c.Region)
	p.City = g.clean(c.City)
	p.Description = g.list(c.Description)
	p.Impact = g.list(c.Impact)
	p.ImpactHighlights = g.list(c.ImpactHighlights)
	p.Operations = g.operations(c.Operations)
	p.Skills = model.Skills{
		Qualifications: g.list(c.Qualifications),
		Knowledge:      g.list(c.Knowledge),
		Experience:     g.list(c.Experience),
		Technical:      g.list(c.TechnicalSkills),
		Behavioral:     g.list(c.Behavioral),
	}
	p.SkillTags = g.list(c.SkillTags)
	p.Culture = g.list(c.Culture)
	p.Opportunities = g.list(c.Opportunities)
	p.IsDraft = isDraft

	switch r := rec.(type) {
	case *model.ProfessionalJob:
		r.JobCategory = g.clean(f.Job.JobCategory)
		r.Industry = g.clean(f.Job.Industry)
		r.EducationLevel = g.clean(f.Job.EducationLevel)
		r.ExperienceLevel = g.clean(f.Job.ExperienceLevel)
		r.ContractType = g.clean(f.Job.ContractType)
		r.Salary = g.clean(f.Job.Salary)
		r.Featured = f.Job.Featured
	case *model.Internship:
		r.Duration = g.clean(f.Internship.Duration)
		r.EmploymentType = g.clean(f.Internship.EmploymentType)
		r.Stipend = g.clean(f.Internship.Stipend)
		r.Requirements = g.list(f.Internship.Requirements)
	case *model.NationalServicePlacement:
		r.PlacementTerms = g.terms(f.Placement)
	case *model.GraduateProgram:
		r.PlacementTerms = g.terms(f.Placement)
	}
	return rec, nil
}

// Save writes rec to the store of its type. Without an existing id the record
// is created; otherwise it replaces the stored record of that id if the
// stored revision still equals expectedRevision. It returns the record id.
func (g *Gateway) Save(ctx context.Context, rec model.Opportunity, existingID *uuid.UUID, expectedRevision int64) (uuid.UUID, error) {
	p := rec.Base()
	if existingID == nil {
		if err := g.repo.Create(ctx, rec); err != nil {
			return uuid.Nil, fmt.Errorf("creating %s: %w", rec.Type(), err)
		}
		return p.ID, nil
	}

	p.ID = *existingID
	if err := g.repo.Update(ctx, rec, expectedRevision); err != nil {
		return uuid.Nil, fmt.Errorf("updating %s %s: %w", rec.Type(), p.ID, err)
	}
	return p.ID, nil
}

func (g *Gateway) terms(f *form.PlacementFields) model.PlacementTerms {
	return model.PlacementTerms{
		Duration:       g.clean(f.Duration),
		EmploymentType: g.clean(f.EmploymentType),
		Salary:         g.clean(f.Salary),
		Requirements:   g.list(f.Requirements),
	}
}

func (g *Gateway) list(l form.Lines) pq.StringArray {
	out := pq.StringArray{}
	for _, v := range l.List() {
		if v = g.clean(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (g *Gateway) operations(o form.Operations) model.Operations {
	out := model.Operations{}
	for _, group := range o.Model() {
		heading := g.clean(group.Heading)
		items := []string(g.list(form.LinesFromList(group.Items)))
		if heading == "" && len(items) == 0 {
			continue
		}
		out = append(out, model.OperationGroup{Heading: heading, Items: items})
	}
	return out
}

// clean strips markup and surrounding whitespace. Text without angle
// brackets is left alone so entities like "&" survive unescaped.
func (g *Gateway) clean(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(g.policy.Sanitize(s)))
}
