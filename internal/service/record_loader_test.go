package service_test

import (
	"context"
	"testing"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/mocks"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRecordLoaderLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("indexed id is read from its store only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		companyRepo := mocks.NewMockCompanyRepositoryIface(ctrl)
		id := uuid.New()
		companyID := uuid.New()

		gomock.InOrder(
			oppRepo.EXPECT().LookupType(gomock.Any(), id).Return(model.TypeGraduateProgram, nil),
			oppRepo.EXPECT().FindByID(gomock.Any(), model.TypeGraduateProgram, id).Return(&model.GraduateProgram{
				Posting: model.Posting{ID: id, Title: "Graduate Scheme", CompanyID: &companyID, CompanyName: "Acme"},
			}, nil),
		)

		loader := service.NewRecordLoader(oppRepo, service.NewCompanyResolver(companyRepo, newCache()))
		got, err := loader.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.TypeGraduateProgram, got.Type)
		assert.Nil(t, got.Company)
	})

	t.Run("unindexed id is searched in order and indexed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		companyRepo := mocks.NewMockCompanyRepositoryIface(ctrl)
		id := uuid.New()
		acme := &model.Company{ID: uuid.New(), Name: "Acme", LogoURL: "https://cdn.example.com/acme.png"}

		gomock.InOrder(
			oppRepo.EXPECT().LookupType(gomock.Any(), id).Return(model.OpportunityType(""), domain.ErrNotFound),
			oppRepo.EXPECT().FindByID(gomock.Any(), model.TypeProfessionalJob, id).Return(nil, domain.ErrOpportunityNotFound),
			oppRepo.EXPECT().FindByID(gomock.Any(), model.TypeInternship, id).Return(&model.Internship{
				Posting: model.Posting{ID: id, Title: "Summer Intern", CompanyName: "Acme"},
			}, nil),
			oppRepo.EXPECT().IndexType(gomock.Any(), id, model.TypeInternship).Return(nil),
		)
		companyRepo.EXPECT().FindByName(gomock.Any(), "Acme").Return(acme, nil)

		loader := service.NewRecordLoader(oppRepo, service.NewCompanyResolver(companyRepo, newCache()))
		got, err := loader.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.TypeInternship, got.Type)

		p := got.Record.Base()
		require.NotNil(t, p.CompanyID)
		assert.Equal(t, acme.ID, *p.CompanyID)
		assert.Equal(t, acme.LogoURL, p.CompanyLogoURL)
		assert.Equal(t, acme, got.Company)
	})

	t.Run("name without match keeps the name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		companyRepo := mocks.NewMockCompanyRepositoryIface(ctrl)
		id := uuid.New()

		oppRepo.EXPECT().LookupType(gomock.Any(), id).Return(model.TypeNationalService, nil)
		oppRepo.EXPECT().FindByID(gomock.Any(), model.TypeNationalService, id).Return(&model.NationalServicePlacement{
			Posting: model.Posting{ID: id, CompanyName: "Initech"},
		}, nil)
		companyRepo.EXPECT().FindByName(gomock.Any(), "Initech").Return(nil, domain.ErrCompanyNotFound)

		loader := service.NewRecordLoader(oppRepo, service.NewCompanyResolver(companyRepo, newCache()))
		got, err := loader.Load(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got.Record.Base().CompanyID)
		assert.Equal(t, "Initech", got.Record.Base().CompanyName)
	})

	t.Run("id in no store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		companyRepo := mocks.NewMockCompanyRepositoryIface(ctrl)
		id := uuid.New()

		oppRepo.EXPECT().LookupType(gomock.Any(), id).Return(model.OpportunityType(""), domain.ErrNotFound)
		for _, typ := range model.SearchOrder {
			oppRepo.EXPECT().FindByID(gomock.Any(), typ, id).Return(nil, domain.ErrOpportunityNotFound)
		}

		loader := service.NewRecordLoader(oppRepo, service.NewCompanyResolver(companyRepo, newCache()))
		_, err := loader.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrOpportunityNotFound)
	})
}
