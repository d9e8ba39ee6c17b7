// Package validation gates step navigation and publishing of an authoring
// form.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/form"
	"github.com/go-playground/validator/v10"
)

// Error lists the fields that block an action. It matches
// domain.ErrValidation with errors.Is.
type Error struct {
	Missing []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrValidation, strings.Join(e.Missing, ", "))
}

func (e *Error) Unwrap() error {
	return domain.ErrValidation
}

// basicInfo holds what step one needs before moving on.
type basicInfo struct {
	Title   string `json:"title" validate:"required"`
	Company string `json:"company" validate:"required"`
}

// publishRules are the required fields of a non-draft opportunity.
type publishRules struct {
	Type        string `json:"type"`
	Title       string `json:"title" validate:"required"`
	CompanyID   string `json:"company_id" validate:"required,uuid"`
	JobCategory string `json:"job_category" validate:"required_if=Type professional_job"`
	Industry    string `json:"industry" validate:"required_if=Type professional_job"`
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// CanProceed reports whether the given step's fields allow moving forward.
// Only the basic info step has blocking requirements.
func (v *Validator) CanProceed(step form.Step, f *form.Form) error {
	if !step.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidStep, int(step))
	}
	if step != form.StepBasicInfo {
		return nil
	}

	company := strings.TrimSpace(f.Common.CompanyName)
	if f.Common.CompanyID != nil {
		company = f.Common.CompanyID.String()
	}
	return v.check(basicInfo{
		Title:   strings.TrimSpace(f.Common.Title),
		Company: company,
	})
}

// Advance returns the step after the given one if the current step allows
// it. The last step has nowhere to go and is returned unchanged.
func (v *Validator) Advance(step form.Step, f *form.Form) (form.Step, error) {
	if err := v.CanProceed(step, f); err != nil {
		return step, err
	}
	if step == form.LastStep {
		return step, nil
	}
	return step + 1, nil
}

// CheckPublish validates the per-type required fields of a non-draft save.
func (v *Validator) CheckPublish(f *form.Form) error {
	rules := publishRules{
		Type:  string(f.Type),
		Title: strings.TrimSpace(f.Common.Title),
	}
	if f.Common.CompanyID != nil {
		rules.CompanyID = f.Common.CompanyID.String()
	}
	if f.Job != nil {
		rules.JobCategory = strings.TrimSpace(f.Job.JobCategory)
		rules.Industry = strings.TrimSpace(f.Job.Industry)
	}
	return v.check(rules)
}

// SubmitDisabled reports whether the submit action should be disabled.
// Drafts are never blocked.
func (v *Validator) SubmitDisabled(f *form.Form, isDraft bool) bool {
	if isDraft {
		return false
	}
	return v.CheckPublish(f) != nil
}

func (v *Validator) check(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, fe.Field())
	}
	sort.Strings(missing)
	return &Error{Missing: missing}
}
