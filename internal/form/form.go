// Package form holds the in-progress draft of an opportunity while an
// employer moves through the authoring steps.
//
// A Form carries the fields common to every opportunity type plus exactly
// one variant struct selected by Type. Switching type swaps the variant.
package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/google/uuid"
)

// Scalar field names accepted by SetField and Field.
const (
	FieldTitle           = "title"
	FieldCompanyName     = "company_name"
	FieldCompanyID       = "company_id"
	FieldCompanyLogo     = "company_logo"
	FieldImageURL        = "image_url"
	FieldApplicationURL  = "application_url"
	FieldRegion          = "region"
	FieldCity            = "city"
	FieldJobCategory     = "job_category"
	FieldIndustry        = "industry"
	FieldEducationLevel  = "education_level"
	FieldExperienceLevel = "experience_level"
	FieldContractType    = "contract_type"
	FieldSalary          = "salary"
	FieldFeatured        = "featured"
	FieldDuration        = "duration"
	FieldEmploymentType  = "employment_type"
	FieldStipend         = "stipend"
)

// List field names accepted by List.
const (
	ListDescription      = "description"
	ListImpact           = "impact"
	ListImpactHighlights = "impact_highlights"
	ListCulture          = "culture"
	ListOpportunities    = "opportunities"
	ListQualifications   = "qualifications"
	ListKnowledge        = "knowledge"
	ListExperience       = "experience"
	ListTechnicalSkills  = "technical_skills"
	ListBehavioral       = "behavioral"
	ListSkillTags        = "skill_tags"
	ListRequirements     = "requirements"
)

// Common holds the fields every opportunity type carries.
type Common struct {
	Title          string     `json:"title"`
	CompanyName    string     `json:"company_name"`
	CompanyID      *uuid.UUID `json:"company_id,omitempty"`
	CompanyLogoURL string     `json:"company_logo"`
	ImageURL       string     `json:"image_url"`
	ApplicationURL string     `json:"application_url"`
	Region         string     `json:"region"`
	City           string     `json:"city"`

	Description      Lines      `json:"description"`
	Impact           Lines      `json:"impact"`
	ImpactHighlights Lines      `json:"impact_highlights"`
	Operations       Operations `json:"operations"`
	Qualifications   Lines      `json:"qualifications"`
	Knowledge        Lines      `json:"knowledge"`
	Experience       Lines      `json:"experience"`
	TechnicalSkills  Lines      `json:"technical_skills"`
	Behavioral       Lines      `json:"behavioral"`
	SkillTags        Lines      `json:"skill_tags"`
	Culture          Lines      `json:"culture"`
	Opportunities    Lines      `json:"opportunities"`
}

// JobFields are carried by professional jobs only.
type JobFields struct {
	JobCategory     string `json:"job_category"`
	Industry        string `json:"industry"`
	EducationLevel  string `json:"education_level"`
	ExperienceLevel string `json:"experience_level"`
	ContractType    string `json:"contract_type"`
	Salary          string `json:"salary"`
	Featured        bool   `json:"featured"`
}

// InternshipFields are carried by internships only.
type InternshipFields struct {
	Duration       string `json:"duration"`
	EmploymentType string `json:"employment_type"`
	Stipend        string `json:"stipend"`
	Requirements   Lines  `json:"requirements"`
}

// PlacementFields are carried by national service placements and graduate
// programs.
type PlacementFields struct {
	Duration       string `json:"duration"`
	EmploymentType string `json:"employment_type"`
	Salary         string `json:"salary"`
	Requirements   Lines  `json:"requirements"`
}

// Form is the in-progress draft of one opportunity.
type Form struct {
	Type          model.OpportunityType `json:"type"`
	Common        Common                `json:"common"`
	Job           *JobFields            `json:"job,omitempty"`
	Internship    *InternshipFields     `json:"internship,omitempty"`
	Placement     *PlacementFields      `json:"placement,omitempty"`
	CompanyLocked bool                  `json:"company_locked"`
}

// New returns an empty form for the given type.
func New(t model.OpportunityType) (*Form, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidOpportunityType, t)
	}
	f := &Form{Type: t}
	f.setVariant(t)
	f.Normalize()
	return f, nil
}

func (f *Form) setVariant(t model.OpportunityType) {
	f.Job, f.Internship, f.Placement = nil, nil, nil
	switch t {
	case model.TypeProfessionalJob:
		f.Job = &JobFields{}
	case model.TypeInternship:
		f.Internship = &InternshipFields{Requirements: NewLines()}
	case model.TypeNationalService, model.TypeGraduateProgram:
		f.Placement = &PlacementFields{Requirements: NewLines()}
	}
}

// SwitchType moves the form to another opportunity type. Common fields stay;
// type-specific fields with the same meaning in both types (duration,
// employment type, salary, requirements) are carried over, the rest are
// dropped.
func (f *Form) SwitchType(t model.OpportunityType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidOpportunityType, t)
	}
	if t == f.Type {
		return nil
	}

	carried := map[string]string{}
	for _, name := range []string{FieldDuration, FieldEmploymentType, FieldSalary} {
		if v, err := f.Field(name); err == nil {
			carried[name] = v
		}
	}
	var requirements Lines
	if l, err := f.List(ListRequirements); err == nil {
		requirements = *l
	}

	f.Type = t
	f.setVariant(t)

	for name, v := range carried {
		if p, err := f.stringField(name); err == nil {
			*p = v
		}
	}
	if requirements != nil {
		if l, err := f.List(ListRequirements); err == nil {
			*l = LinesFromList(requirements)
		}
	}
	f.Normalize()
	return nil
}

// LockCompany pre-fills the company fields from the employer's company and
// prevents further edits of them.
func (f *Form) LockCompany(c *model.Company) {
	if c == nil {
		return
	}
	id := c.ID
	f.Common.CompanyID = &id
	f.Common.CompanyName = c.Name
	f.Common.CompanyLogoURL = c.LogoURL
	f.CompanyLocked = true
}

// SetField assigns a scalar field by name.
func (f *Form) SetField(name, value string) error {
	switch name {
	case FieldCompanyName, FieldCompanyID, FieldCompanyLogo:
		if f.CompanyLocked {
			return fmt.Errorf("%w: %s", domain.ErrCompanyLocked, name)
		}
	}

	switch name {
	case FieldCompanyID:
		value = strings.TrimSpace(value)
		if value == "" {
			f.Common.CompanyID = nil
			return nil
		}
		id, err := uuid.Parse(value)
		if err != nil {
			return fmt.Errorf("%w: company_id: %v", domain.ErrInvalidInput, err)
		}
		f.Common.CompanyID = &id
		return nil
	case FieldFeatured:
		if f.Job == nil {
			return fmt.Errorf("%w: %s", domain.ErrFieldNotApplicable, name)
		}
		featured, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: featured: %v", domain.ErrInvalidInput, err)
		}
		f.Job.Featured = featured
		return nil
	}

	p, err := f.stringField(name)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// Field returns the current value of a scalar field by name.
func (f *Form) Field(name string) (string, error) {
	switch name {
	case FieldCompanyID:
		if f.Common.CompanyID == nil {
			return "", nil
		}
		return f.Common.CompanyID.String(), nil
	case FieldFeatured:
		if f.Job == nil {
			return "", fmt.Errorf("%w: %s", domain.ErrFieldNotApplicable, name)
		}
		return strconv.FormatBool(f.Job.Featured), nil
	}

	p, err := f.stringField(name)
	if err != nil {
		return "", err
	}
	return *p, nil
}

func (f *Form) stringField(name string) (*string, error) {
	c := &f.Common
	switch name {
	case FieldTitle:
		return &c.Title, nil
	case FieldCompanyName:
		return &c.CompanyName, nil
	case FieldCompanyLogo:
		return &c.CompanyLogoURL, nil
	case FieldImageURL:
		return &c.ImageURL, nil
	case FieldApplicationURL:
		return &c.ApplicationURL, nil
	case FieldRegion:
		return &c.Region, nil
	case FieldCity:
		return &c.City, nil
	}

	switch {
	case f.Job != nil:
		switch name {
		case FieldJobCategory:
			return &f.Job.JobCategory, nil
		case FieldIndustry:
			return &f.Job.Industry, nil
		case FieldEducationLevel:
			return &f.Job.EducationLevel, nil
		case FieldExperienceLevel:
			return &f.Job.ExperienceLevel, nil
		case FieldContractType:
			return &f.Job.ContractType, nil
		case FieldSalary:
			return &f.Job.Salary, nil
		}
	case f.Internship != nil:
		switch name {
		case FieldDuration:
			return &f.Internship.Duration, nil
		case FieldEmploymentType:
			return &f.Internship.EmploymentType, nil
		case FieldStipend:
			return &f.Internship.Stipend, nil
		}
	case f.Placement != nil:
		switch name {
		case FieldDuration:
			return &f.Placement.Duration, nil
		case FieldEmploymentType:
			return &f.Placement.EmploymentType, nil
		case FieldSalary:
			return &f.Placement.Salary, nil
		}
	}

	if isKnownField(name) {
		return nil, fmt.Errorf("%w: %s on %s", domain.ErrFieldNotApplicable, name, f.Type)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownField, name)
}

func isKnownField(name string) bool {
	switch name {
	case FieldJobCategory, FieldIndustry, FieldEducationLevel, FieldExperienceLevel,
		FieldContractType, FieldSalary, FieldFeatured, FieldDuration,
		FieldEmploymentType, FieldStipend:
		return true
	}
	return false
}

// List returns the editable list field with the given name.
func (f *Form) List(name string) (*Lines, error) {
	c := &f.Common
	switch name {
	case ListDescription:
		return &c.Description, nil
	case ListImpact:
		return &c.Impact, nil
	case ListImpactHighlights:
		return &c.ImpactHighlights, nil
	case ListCulture:
		return &c.Culture, nil
	case ListOpportunities:
		return &c.Opportunities, nil
	case ListQualifications:
		return &c.Qualifications, nil
	case ListKnowledge:
		return &c.Knowledge, nil
	case ListExperience:
		return &c.Experience, nil
	case ListTechnicalSkills:
		return &c.TechnicalSkills, nil
	case ListBehavioral:
		return &c.Behavioral, nil
	case ListSkillTags:
		return &c.SkillTags, nil
	case ListRequirements:
		switch {
		case f.Internship != nil:
			return &f.Internship.Requirements, nil
		case f.Placement != nil:
			return &f.Placement.Requirements, nil
		}
		return nil, fmt.Errorf("%w: %s on %s", domain.ErrFieldNotApplicable, name, f.Type)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownField, name)
}

// Normalize restores the editing invariants (every list holds at least one
// line) after the form was decoded from storage.
func (f *Form) Normalize() {
	c := &f.Common
	for _, l := range []*Lines{
		&c.Description, &c.Impact, &c.ImpactHighlights, &c.Qualifications,
		&c.Knowledge, &c.Experience, &c.TechnicalSkills, &c.Behavioral,
		&c.SkillTags, &c.Culture, &c.Opportunities,
	} {
		l.normalize()
	}
	c.Operations.normalize()
	if f.Internship != nil {
		f.Internship.Requirements.normalize()
	}
	if f.Placement != nil {
		f.Placement.Requirements.normalize()
	}
}

// Check verifies that exactly the variant matching Type is present.
func (f *Form) Check() error {
	var ok bool
	switch f.Type {
	case model.TypeProfessionalJob:
		ok = f.Job != nil && f.Internship == nil && f.Placement == nil
	case model.TypeInternship:
		ok = f.Internship != nil && f.Job == nil && f.Placement == nil
	case model.TypeNationalService, model.TypeGraduateProgram:
		ok = f.Placement != nil && f.Job == nil && f.Internship == nil
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidOpportunityType, f.Type)
	}
	if !ok {
		return fmt.Errorf("form variant does not match type %s", f.Type)
	}
	return nil
}

// FromRecord builds an editable form from a stored opportunity.
func FromRecord(rec model.Opportunity) (*Form, error) {
	f, err := New(rec.Type())
	if err != nil {
		return nil, err
	}

	p := rec.Base()
	c := &f.Common
	c.Title = p.Title
	c.CompanyName = p.CompanyName
	if p.CompanyID != nil {
		id := *p.CompanyID
		c.CompanyID = &id
	}
	c.CompanyLogoURL = p.CompanyLogoURL
	c.ImageURL = p.ImageURL
	c.ApplicationURL = p.ApplicationURL
	c.Region = p.Region
	c.City = p.City
	c.Description = LinesFromList(p.Description)
	c.Impact = LinesFromList(p.Impact)
	c.ImpactHighlights = LinesFromList(p.ImpactHighlights)
	c.Operations = OperationsFromModel(p.Operations)
	c.Qualifications = LinesFromList(p.Skills.Qualifications)
	c.Knowledge = LinesFromList(p.Skills.Knowledge)
	c.Experience = LinesFromList(p.Skills.Experience)
	c.TechnicalSkills = LinesFromList(p.Skills.Technical)
	c.Behavioral = LinesFromList(p.Skills.Behavioral)
	c.SkillTags = LinesFromList(p.SkillTags)
	c.Culture = LinesFromList(p.Culture)
	c.Opportunities = LinesFromList(p.Opportunities)

	switch r := rec.(type) {
	case *model.ProfessionalJob:
		*f.Job = JobFields{
			JobCategory:     r.JobCategory,
			Industry:        r.Industry,
			EducationLevel:  r.EducationLevel,
			ExperienceLevel: r.ExperienceLevel,
			ContractType:    r.ContractType,
			Salary:          r.Salary,
			Featured:        r.Featured,
		}
	case *model.Internship:
		*f.Internship = InternshipFields{
			Duration:       r.Duration,
			EmploymentType: r.EmploymentType,
			Stipend:        r.Stipend,
			Requirements:   LinesFromList(r.Requirements),
		}
	case *model.NationalServicePlacement:
		*f.Placement = placementFromTerms(r.PlacementTerms)
	case *model.GraduateProgram:
		*f.Placement = placementFromTerms(r.PlacementTerms)
	}
	return f, nil
}

func placementFromTerms(t model.PlacementTerms) PlacementFields {
	return PlacementFields{
		Duration:       t.Duration,
		EmploymentType: t.EmploymentType,
		Salary:         t.Salary,
		Requirements:   LinesFromList(t.Requirements),
	}
}
