// internal/model/opportunity.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Opportunity is implemented by the four opportunity records. Each record
// lives in its own table; rows are never shared between types.
type Opportunity interface {
	Type() OpportunityType
	Base() *Posting
	TableName() string
}

// NewOpportunity returns an empty record for the given type.
func NewOpportunity(t OpportunityType) (Opportunity, error) {
	switch t {
	case TypeProfessionalJob:
		return &ProfessionalJob{}, nil
	case TypeInternship:
		return &Internship{}, nil
	case TypeNationalService:
		return &NationalServicePlacement{}, nil
	case TypeGraduateProgram:
		return &GraduateProgram{}, nil
	}
	_, err := ParseOpportunityType(string(t))
	return nil, err
}

// Posting holds the attributes common to every opportunity type.
type Posting struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string         `gorm:"type:text;not null" json:"title"`
	CompanyName      string         `gorm:"type:text" json:"company_name"`
	CompanyID        *uuid.UUID     `gorm:"type:uuid;index" json:"company_id"`
	CompanyLogoURL   string         `gorm:"type:text" json:"company_logo"`
	ImageURL         string         `gorm:"type:text" json:"image_url"`
	ApplicationURL   string         `gorm:"type:text" json:"application_url"`
	Description      pq.StringArray `gorm:"type:text[]" json:"description"`
	Impact           pq.StringArray `gorm:"type:text[]" json:"impact"`
	ImpactHighlights pq.StringArray `gorm:"type:text[]" json:"impact_highlights"`
	Operations       Operations     `gorm:"type:jsonb" json:"operations"`
	Skills           Skills         `gorm:"type:jsonb" json:"skills"`
	SkillTags        pq.StringArray `gorm:"type:text[]" json:"skill_tags"`
	Culture          pq.StringArray `gorm:"type:text[]" json:"culture"`
	Opportunities    pq.StringArray `gorm:"type:text[]" json:"opportunities"`
	Region           string         `gorm:"type:text" json:"region"`
	City             string         `gorm:"type:text" json:"city"`
	IsDraft          bool           `gorm:"not null" json:"is_draft"`
	Revision         int64          `gorm:"not null" json:"revision"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Base returns the common attributes.
func (p *Posting) Base() *Posting {
	return p
}

// BeforeCreate hook for every opportunity record
func (p *Posting) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Revision == 0 {
		p.Revision = 1
	}
	return nil
}

type ProfessionalJob struct {
	Posting
	JobCategory     string `gorm:"type:text" json:"job_category"`
	Industry        string `gorm:"type:text" json:"industry"`
	EducationLevel  string `gorm:"type:text" json:"education_level"`
	ExperienceLevel string `gorm:"type:text" json:"experience_level"`
	ContractType    string `gorm:"type:text" json:"contract_type"`
	Salary          string `gorm:"type:text" json:"salary"`
	Verified        bool   `gorm:"not null" json:"verified"`
	Featured        bool   `gorm:"not null" json:"featured"`
}

func (ProfessionalJob) TableName() string     { return TypeProfessionalJob.Store() }
func (ProfessionalJob) Type() OpportunityType { return TypeProfessionalJob }

type Internship struct {
	Posting
	Duration       string         `gorm:"type:text" json:"duration"`
	EmploymentType string         `gorm:"type:text" json:"employment_type"`
	Stipend        string         `gorm:"type:text" json:"stipend"`
	Requirements   pq.StringArray `gorm:"type:text[]" json:"requirements"`
}

func (Internship) TableName() string     { return TypeInternship.Store() }
func (Internship) Type() OpportunityType { return TypeInternship }

// PlacementTerms are shared by national service placements and graduate
// programs.
type PlacementTerms struct {
	Duration       string         `gorm:"type:text" json:"duration"`
	EmploymentType string         `gorm:"type:text" json:"employment_type"`
	Salary         string         `gorm:"type:text" json:"salary"`
	Requirements   pq.StringArray `gorm:"type:text[]" json:"requirements"`
}

type NationalServicePlacement struct {
	Posting
	PlacementTerms
}

func (NationalServicePlacement) TableName() string     { return TypeNationalService.Store() }
func (NationalServicePlacement) Type() OpportunityType { return TypeNationalService }

type GraduateProgram struct {
	Posting
	PlacementTerms
}

func (GraduateProgram) TableName() string     { return TypeGraduateProgram.Store() }
func (GraduateProgram) Type() OpportunityType { return TypeGraduateProgram }

// OperationGroup is one heading of the operational detail block with its
// ordered line items.
type OperationGroup struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

// Operations is stored as a JSONB array of groups.
type Operations []OperationGroup

// Value implements the driver.Valuer interface
func (o Operations) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	data, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("marshaling operations: %w", err)
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (o *Operations) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if data == nil {
		*o = Operations{}
		return nil
	}
	if err := json.Unmarshal(data, o); err != nil {
		return fmt.Errorf("decoding operations: %w", err)
	}
	return nil
}

// Skills is the skills taxonomy: five independently ordered lists.
type Skills struct {
	Qualifications []string `json:"qualifications"`
	Knowledge      []string `json:"knowledge"`
	Experience     []string `json:"experience"`
	Technical      []string `json:"technical"`
	Behavioral     []string `json:"behavioral"`
}

// Value implements the driver.Valuer interface
func (s Skills) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling skills: %w", err)
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (s *Skills) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if data == nil {
		*s = Skills{}
		return nil
	}
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("decoding skills: %w", err)
	}
	return nil
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	return nil, fmt.Errorf("unsupported Scan, storing driver.Value type %T into JSON column", value)
}
