package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/core/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PlanServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPlanRepository
	service  portssvc.PlanSvcFacade
	manager  domain.Principal
}

func (suite *PlanServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPlanRepository)
	suite.service = services.NewPlanService(suite.mockRepo, services.WithClock(fixedClock))
	suite.manager = domain.Principal{AccountID: uuid.NewString(), Role: domain.RoleManager}
}

func (suite *PlanServiceTestSuite) TestCreatePlan_Success() {
	ctx := context.Background()
	suite.mockRepo.On("SavePlan", ctx, mock.AnythingOfType("domain.Plan")).Return(nil).Once()

	plan, err := suite.service.CreatePlan(ctx, suite.manager, dto.CreatePlanRequest{
		Name:           " Gold ",
		Price:          decimal.NewFromInt(1000),
		DurationMonths: 1,
		Description:    "Monthly access",
	})

	suite.Require().NoError(err)
	suite.Equal("Gold", plan.Name)
	suite.Equal(fixedNow, plan.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PlanServiceTestSuite) TestCreatePlan_Rejected() {
	tests := []struct {
		name    string
		actor   domain.Principal
		req     dto.CreatePlanRequest
		wantErr error
	}{
		{
			name:    "coach",
			actor:   domain.Principal{AccountID: uuid.NewString(), Role: domain.RoleCoach},
			req:     dto.CreatePlanRequest{Name: "Gold", Price: decimal.NewFromInt(1000), DurationMonths: 1, Description: "x"},
			wantErr: apperrors.ErrForbidden,
		},
		{
			name:    "zero price",
			actor:   suite.manager,
			req:     dto.CreatePlanRequest{Name: "Gold", Price: decimal.Zero, DurationMonths: 1, Description: "x"},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "sub-cent price",
			actor:   suite.manager,
			req:     dto.CreatePlanRequest{Name: "Gold", Price: decimal.RequireFromString("999.999"), DurationMonths: 1, Description: "x"},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "no duration",
			actor:   suite.manager,
			req:     dto.CreatePlanRequest{Name: "Gold", Price: decimal.NewFromInt(10), Description: "x"},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.CreatePlan(context.Background(), tt.actor, tt.req)
			suite.ErrorIs(err, tt.wantErr)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePlan", mock.Anything, mock.Anything)
}

func (suite *PlanServiceTestSuite) TestCreatePlan_DuplicateName() {
	ctx := context.Background()
	suite.mockRepo.On("SavePlan", ctx, mock.AnythingOfType("domain.Plan")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreatePlan(ctx, suite.manager, dto.CreatePlanRequest{Name: "Gold", Price: decimal.NewFromInt(1), DurationMonths: 1, Description: "x"})

	suite.Equal(409, apperrors.StatusCode(err))
}

func (suite *PlanServiceTestSuite) TestUpdatePlan() {
	ctx := context.Background()
	existing := &domain.Plan{PlanID: uuid.NewString(), Name: "Gold", Price: decimal.NewFromInt(1000), DurationMonths: 1, Description: "x"}
	price := decimal.NewFromInt(1200)
	suite.mockRepo.On("FindPlanByID", ctx, existing.PlanID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdatePlan", ctx, mock.MatchedBy(func(p domain.Plan) bool {
		return p.Price.Equal(price) && p.LastUpdatedBy == suite.manager.AccountID
	})).Return(nil).Once()

	updated, err := suite.service.UpdatePlan(ctx, suite.manager, existing.PlanID, dto.UpdatePlanRequest{Price: &price})

	suite.Require().NoError(err)
	suite.True(price.Equal(updated.Price))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PlanServiceTestSuite) TestRemovePlan_NotFound() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.mockRepo.On("MarkPlanDeleted", ctx, id, fixedNow, suite.manager.AccountID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.RemovePlan(ctx, suite.manager, id)

	suite.Equal(404, apperrors.StatusCode(err))
}

func (suite *PlanServiceTestSuite) TestListPlans_Empty() {
	ctx := context.Background()
	suite.mockRepo.On("ListPlans", ctx).Return(nil, nil).Once()

	plans, err := suite.service.ListPlans(ctx)

	suite.Require().NoError(err)
	suite.NotNil(plans)
}

func TestPlanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PlanServiceTestSuite))
}
