// Package review decides whether saving an edited opportunity keeps its
// approval or sends it back to pending review.
//
// Each opportunity type declares a set of critical fields. A snapshot of
// those fields is taken when an approved posting is loaded for editing; on
// save the snapshot is compared with the current form values.
package review

import (
	"fmt"
	"strings"

	"github.com/dangerclosesec/jobdesk/internal/form"
	"github.com/dangerclosesec/jobdesk/internal/model"
)

type Outcome string

const (
	// OutcomeReset means a critical field changed and approval was revoked.
	OutcomeReset Outcome = "reset"
	// OutcomePreserved means the posting stays approved.
	OutcomePreserved Outcome = "preserved"
	// OutcomePending means the posting was not approved before the save.
	OutcomePending Outcome = "pending"
	// OutcomeNotApplicable means the type has no approval gate.
	OutcomeNotApplicable Outcome = "not_applicable"
)

var criticalFields = map[model.OpportunityType][]string{
	model.TypeProfessionalJob: {
		form.FieldTitle,
		form.FieldCompanyName,
		form.FieldCompanyID,
		form.FieldJobCategory,
		form.FieldIndustry,
		form.FieldSalary,
		form.FieldRegion,
		form.FieldCity,
		form.FieldApplicationURL,
	},
	// Internships, national service placements and graduate programs carry
	// no approval flag.
	model.TypeInternship:      nil,
	model.TypeNationalService: nil,
	model.TypeGraduateProgram: nil,
}

// CriticalFields returns the fields whose change forces re-review for t.
func CriticalFields(t model.OpportunityType) []string {
	fields := criticalFields[t]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// Applies reports whether t has an approval gate.
func Applies(t model.OpportunityType) bool {
	return len(criticalFields[t]) > 0
}

// Snapshot holds the critical field values of a posting at load time.
type Snapshot struct {
	Type   model.OpportunityType `json:"type"`
	Values map[string]string     `json:"values"`
}

// TakeSnapshot captures the critical fields of f. It returns nil when the
// form's type has no approval gate.
func TakeSnapshot(f *form.Form) *Snapshot {
	if !Applies(f.Type) {
		return nil
	}
	s := &Snapshot{Type: f.Type, Values: map[string]string{}}
	for _, name := range criticalFields[f.Type] {
		s.Values[name] = fieldValue(f, name)
	}
	return s
}

// Changed lists the critical fields whose current value differs from the
// snapshot. A form of another type differs in every field.
func (s *Snapshot) Changed(f *form.Form) []string {
	if f.Type != s.Type {
		return CriticalFields(s.Type)
	}
	var changed []string
	for _, name := range criticalFields[s.Type] {
		if fieldValue(f, name) != s.Values[name] {
			changed = append(changed, name)
		}
	}
	return changed
}

// Decision is the approval state to persist and what to tell the employer.
type Decision struct {
	Verified bool     `json:"verified"`
	Outcome  Outcome  `json:"outcome"`
	Changed  []string `json:"changed,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// Decide computes the approval state of a save. snapshot is nil for new
// postings and for postings that were not approved when loaded.
func Decide(snapshot *Snapshot, f *form.Form, wasVerified bool) Decision {
	if !Applies(f.Type) {
		return Decision{Outcome: OutcomeNotApplicable}
	}
	if !wasVerified || snapshot == nil {
		return Decision{
			Outcome: OutcomePending,
			Message: "Your posting will be reviewed before it goes live.",
		}
	}

	changed := snapshot.Changed(f)
	if len(changed) > 0 {
		return Decision{
			Outcome: OutcomeReset,
			Changed: changed,
			Message: fmt.Sprintf("Changes to %s require re-review. The posting is pending approval again.", strings.Join(changed, ", ")),
		}
	}
	return Decision{
		Verified: true,
		Outcome:  OutcomePreserved,
		Message:  "Your posting remains live.",
	}
}

func fieldValue(f *form.Form, name string) string {
	v, err := f.Field(name)
	if err != nil {
		return ""
	}
	return v
}
