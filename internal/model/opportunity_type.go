// internal/model/opportunity_type.go
package model

import (
	"fmt"

	"github.com/dangerclosesec/jobdesk/internal/domain"
)

// OpportunityType selects the record store an opportunity lives in.
type OpportunityType string

const (
	TypeProfessionalJob OpportunityType = "professional_job"
	TypeInternship      OpportunityType = "internship"
	TypeNationalService OpportunityType = "national_service_placement"
	TypeGraduateProgram OpportunityType = "graduate_program"
)

// SearchOrder is the fixed order in which stores are searched for an
// identifier that has no index entry.
var SearchOrder = []OpportunityType{
	TypeProfessionalJob,
	TypeInternship,
	TypeNationalService,
	TypeGraduateProgram,
}

// ParseOpportunityType converts a raw string to an OpportunityType.
func ParseOpportunityType(s string) (OpportunityType, error) {
	t := OpportunityType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidOpportunityType, s)
	}
	return t, nil
}

// Valid reports whether t is one of the four known types.
func (t OpportunityType) Valid() bool {
	switch t {
	case TypeProfessionalJob, TypeInternship, TypeNationalService, TypeGraduateProgram:
		return true
	}
	return false
}

// Store returns the name of the table holding records of this type.
func (t OpportunityType) Store() string {
	switch t {
	case TypeProfessionalJob:
		return "professional_jobs"
	case TypeInternship:
		return "internships"
	case TypeNationalService:
		return "national_service_placements"
	case TypeGraduateProgram:
		return "graduate_programs"
	}
	return ""
}

// Label is the human readable name used in messages and draft titles.
func (t OpportunityType) Label() string {
	switch t {
	case TypeProfessionalJob:
		return "Job"
	case TypeInternship:
		return "Internship"
	case TypeNationalService:
		return "National Service Placement"
	case TypeGraduateProgram:
		return "Graduate Program"
	}
	return "Opportunity"
}
