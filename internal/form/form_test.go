package form

import (
	"encoding/json"
	"testing"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsOneVariant(t *testing.T) {
	for _, typ := range model.SearchOrder {
		t.Run(string(typ), func(t *testing.T) {
			f, err := New(typ)
			require.NoError(t, err)
			assert.NoError(t, f.Check())
			assert.Equal(t, Lines{""}, f.Common.Description)
		})
	}

	_, err := New("volunteering")
	assert.ErrorIs(t, err, domain.ErrInvalidOpportunityType)
}

func TestSetFieldPerType(t *testing.T) {
	job, err := New(model.TypeProfessionalJob)
	require.NoError(t, err)
	require.NoError(t, job.SetField(FieldTitle, "Marketing Manager"))
	require.NoError(t, job.SetField(FieldSalary, "GHS 2000"))
	require.NoError(t, job.SetField(FieldFeatured, "true"))
	assert.ErrorIs(t, job.SetField(FieldStipend, "100"), domain.ErrFieldNotApplicable)
	assert.ErrorIs(t, job.SetField("nickname", "x"), domain.ErrUnknownField)
	assert.True(t, job.Job.Featured)

	internship, err := New(model.TypeInternship)
	require.NoError(t, err)
	require.NoError(t, internship.SetField(FieldStipend, "GHS 500"))
	assert.ErrorIs(t, internship.SetField(FieldSalary, "GHS 500"), domain.ErrFieldNotApplicable)
	assert.ErrorIs(t, internship.SetField(FieldFeatured, "true"), domain.ErrFieldNotApplicable)

	_, err = job.List(ListRequirements)
	assert.ErrorIs(t, err, domain.ErrFieldNotApplicable)
	_, err = internship.List(ListRequirements)
	assert.NoError(t, err)
}

func TestLockCompany(t *testing.T) {
	f, err := New(model.TypeProfessionalJob)
	require.NoError(t, err)

	company := &model.Company{ID: uuid.New(), Name: "Acme Ltd", LogoURL: "https://cdn.example.com/acme.png"}
	f.LockCompany(company)

	assert.Equal(t, company.ID, *f.Common.CompanyID)
	assert.Equal(t, "Acme Ltd", f.Common.CompanyName)
	assert.ErrorIs(t, f.SetField(FieldCompanyName, "Other Ltd"), domain.ErrCompanyLocked)
	assert.ErrorIs(t, f.SetField(FieldCompanyID, uuid.NewString()), domain.ErrCompanyLocked)
	assert.Equal(t, company.ID, *f.Common.CompanyID)
}

func TestSwitchTypeCarriesSharedFields(t *testing.T) {
	f, err := New(model.TypeInternship)
	require.NoError(t, err)
	require.NoError(t, f.SetField(FieldTitle, "Data intern"))
	require.NoError(t, f.SetField(FieldDuration, "6 months"))
	require.NoError(t, f.SetField(FieldStipend, "GHS 800"))
	reqs, err := f.List(ListRequirements)
	require.NoError(t, err)
	require.NoError(t, reqs.Set(0, "Final year student"))

	require.NoError(t, f.SwitchType(model.TypeGraduateProgram))
	assert.NoError(t, f.Check())
	assert.Equal(t, "Data intern", f.Common.Title)
	assert.Equal(t, "6 months", f.Placement.Duration)
	assert.Equal(t, Lines{"Final year student"}, f.Placement.Requirements)

	require.NoError(t, f.SwitchType(model.TypeProfessionalJob))
	assert.NoError(t, f.Check())
	assert.Nil(t, f.Placement)
	_, err = f.Field(FieldDuration)
	assert.ErrorIs(t, err, domain.ErrFieldNotApplicable)
}

func TestFormJSONRoundTrip(t *testing.T) {
	f, err := New(model.TypeNationalService)
	require.NoError(t, err)
	require.NoError(t, f.SetField(FieldSalary, "GHS 1200"))

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var decoded Form
	require.NoError(t, json.Unmarshal(data, &decoded))
	decoded.Normalize()
	assert.NoError(t, decoded.Check())
	assert.Equal(t, "GHS 1200", decoded.Placement.Salary)
}

func TestFromRecord(t *testing.T) {
	companyID := uuid.New()
	rec := &model.ProfessionalJob{
		Posting: model.Posting{
			ID:          uuid.New(),
			Title:       "Accountant",
			CompanyName: "Acme Ltd",
			CompanyID:   &companyID,
			Description: pq.StringArray{"Keep the books", "Close the month"},
			Operations:  model.Operations{{Heading: "Tools", Items: []string{"Excel"}}},
			Skills:      model.Skills{Technical: []string{"IFRS"}},
		},
		JobCategory: "Finance",
		Salary:      "GHS 3000",
		Verified:    true,
	}

	f, err := FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, model.TypeProfessionalJob, f.Type)
	assert.Equal(t, "Keep the books\nClose the month", f.Common.Description.Text())
	assert.Equal(t, Lines{"IFRS"}, f.Common.TechnicalSkills)
	assert.Equal(t, Lines{""}, f.Common.Culture)
	assert.Equal(t, "Finance", f.Job.JobCategory)
	assert.Equal(t, "Tools", f.Common.Operations[0].Heading)
}

func TestParseStep(t *testing.T) {
	s, err := ParseStep("skills")
	require.NoError(t, err)
	assert.Equal(t, StepSkills, s)
	assert.Equal(t, StepImpact, s.Prev().Prev())
	assert.Equal(t, StepBasicInfo, StepBasicInfo.Prev())

	_, err = ParseStep("review")
	assert.ErrorIs(t, err, domain.ErrInvalidStep)
}
