package validation_test

import (
	"errors"
	"testing"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/form"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newForm(t *testing.T, typ model.OpportunityType) *form.Form {
	t.Helper()
	f, err := form.New(typ)
	require.NoError(t, err)
	return f
}

func missing(t *testing.T, err error) []string {
	t.Helper()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %v", err)
	return verr.Missing
}

func TestCanProceedBasicInfo(t *testing.T) {
	v := validation.New()
	f := newForm(t, model.TypeProfessionalJob)

	err := v.CanProceed(form.StepBasicInfo, f)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{"company", "title"}, missing(t, err))

	require.NoError(t, f.SetField(form.FieldTitle, "Marketing Manager"))
	require.NoError(t, f.SetField(form.FieldCompanyName, "Acme Ltd"))
	assert.NoError(t, v.CanProceed(form.StepBasicInfo, f))

	next, err := v.Advance(form.StepBasicInfo, f)
	require.NoError(t, err)
	assert.Equal(t, form.StepImpact, next)
}

func TestLaterStepsNeverBlock(t *testing.T) {
	v := validation.New()
	f := newForm(t, model.TypeInternship)

	for _, step := range []form.Step{form.StepImpact, form.StepOperations, form.StepSkills, form.StepCultureApplication} {
		assert.NoError(t, v.CanProceed(step, f), step.String())
	}

	last, err := v.Advance(form.LastStep, f)
	require.NoError(t, err)
	assert.Equal(t, form.LastStep, last)

	_, err = v.Advance(form.Step(9), f)
	assert.ErrorIs(t, err, domain.ErrInvalidStep)
}

func TestCheckPublishPerType(t *testing.T) {
	v := validation.New()

	job := newForm(t, model.TypeProfessionalJob)
	require.NoError(t, job.SetField(form.FieldTitle, "Marketing Manager"))
	err := v.CheckPublish(job)
	assert.Equal(t, []string{"company_id", "industry", "job_category"}, missing(t, err))

	require.NoError(t, job.SetField(form.FieldCompanyID, uuid.NewString()))
	require.NoError(t, job.SetField(form.FieldJobCategory, "Marketing"))
	require.NoError(t, job.SetField(form.FieldIndustry, "Retail"))
	assert.NoError(t, v.CheckPublish(job))

	for _, typ := range []model.OpportunityType{model.TypeInternship, model.TypeNationalService, model.TypeGraduateProgram} {
		f := newForm(t, typ)
		require.NoError(t, f.SetField(form.FieldTitle, "Trainee"))
		require.NoError(t, f.SetField(form.FieldCompanyID, uuid.NewString()))
		assert.NoError(t, v.CheckPublish(f), string(typ))
	}
}

func TestWhitespaceTitleIsMissing(t *testing.T) {
	v := validation.New()
	f := newForm(t, model.TypeGraduateProgram)
	require.NoError(t, f.SetField(form.FieldTitle, "   "))
	require.NoError(t, f.SetField(form.FieldCompanyID, uuid.NewString()))

	assert.Equal(t, []string{"title"}, missing(t, v.CheckPublish(f)))
}

func TestSubmitDisabledOnlyForPublish(t *testing.T) {
	v := validation.New()
	for _, typ := range model.SearchOrder {
		f := newForm(t, typ)
		assert.False(t, v.SubmitDisabled(f, true), "draft of %s must never be blocked", typ)
		assert.True(t, v.SubmitDisabled(f, false), "empty %s must not publish", typ)
	}
}
