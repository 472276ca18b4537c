package services_test

import (
	"context"
	"testing"
	"time"

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

type BillingServiceTestSuite struct {
	suite.Suite
	accountRepo *MockAccountRepository
	planRepo    *MockPlanRepository
	invoiceRepo *MockInvoiceRepository
	service     portssvc.BillingSvcFacade

	manager domain.Principal
	member  *domain.Account
	gold    *domain.Plan
	silver  *domain.Plan
}

func (suite *BillingServiceTestSuite) SetupTest() {
	suite.accountRepo = new(MockAccountRepository)
	suite.planRepo = new(MockPlanRepository)
	suite.invoiceRepo = new(MockInvoiceRepository)
	suite.service = services.NewBillingService(suite.accountRepo, suite.planRepo, suite.invoiceRepo, services.WithClock(fixedClock))

	suite.manager = domain.Principal{AccountID: uuid.NewString(), Role: domain.RoleManager}
	suite.member = &domain.Account{AccountID: uuid.NewString(), Name: "Ravi", Role: domain.RoleMember}
	suite.gold = &domain.Plan{PlanID: uuid.NewString(), Name: "Gold", Price: decimal.NewFromInt(1000), DurationMonths: 1}
	suite.silver = &domain.Plan{PlanID: uuid.NewString(), Name: "Silver", Price: decimal.NewFromInt(900), DurationMonths: 3}
}

func (suite *BillingServiceTestSuite) expectLoads(ctx context.Context, plan *domain.Plan) {
	suite.accountRepo.On("FindAccountByID", ctx, suite.member.AccountID).Return(suite.member, nil).Once()
	suite.planRepo.On("FindPlanByID", ctx, plan.PlanID).Return(plan, nil).Once()
}

func (suite *BillingServiceTestSuite) TestAssignPlan_Success() {
	ctx := context.Background()
	discount := decimal.NewFromInt(200)
	suite.expectLoads(ctx, suite.gold)
	suite.invoiceRepo.On("SavePlanInvoice", ctx, mock.AnythingOfType("domain.Invoice"), "").Return(nil).Once()

	invoice, err := suite.service.AssignPlan(ctx, suite.manager, dto.AssignPlanRequest{
		AccountID: suite.member.AccountID,
		PlanID:    suite.gold.PlanID,
		Discount:  &discount,
	})

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(1000).Equal(invoice.Amount))
	suite.True(decimal.NewFromInt(800).Equal(invoice.FinalAmount), "final amount %s", invoice.FinalAmount)
	suite.Equal(fixedNow, invoice.PaymentDate)
	suite.Equal(fixedNow.AddDate(0, 1, 0), invoice.DueDate)
	suite.Equal(domain.InvoiceStatusPaid, invoice.Status)
	suite.Equal("Plan assigned: Gold to Ravi for 1 Months", invoice.Description)
	suite.Equal(suite.gold.PlanID, invoice.PlanID)
	suite.Equal(suite.manager.AccountID, invoice.CreatedBy)
	suite.invoiceRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestAssignPlan_ActivePlanGuard() {
	ctx := context.Background()
	suite.member.CurrentInvoice = &domain.Invoice{
		InvoiceID: uuid.NewString(),
		AccountID: suite.member.AccountID,
		DueDate:   fixedNow.AddDate(0, 0, 20),
	}
	req := dto.AssignPlanRequest{AccountID: suite.member.AccountID, PlanID: suite.gold.PlanID}

	suite.expectLoads(ctx, suite.gold)
	invoice, err := suite.service.AssignPlan(ctx, suite.manager, req)

	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Equal(409, apperrors.StatusCode(err))
	suite.invoiceRepo.AssertNotCalled(suite.T(), "SavePlanInvoice", mock.Anything, mock.Anything, mock.Anything)

	req.Force = true
	suite.expectLoads(ctx, suite.gold)
	suite.invoiceRepo.On("SavePlanInvoice", ctx, mock.AnythingOfType("domain.Invoice"), suite.member.CurrentInvoice.InvoiceID).Return(nil).Once()

	invoice, err = suite.service.AssignPlan(ctx, suite.manager, req)

	suite.Require().NoError(err)
	suite.NotNil(invoice)
	suite.invoiceRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestAssignPlan_ExpiredPlanNeedsNoForce() {
	ctx := context.Background()
	suite.member.CurrentInvoice = &domain.Invoice{InvoiceID: uuid.NewString(), DueDate: fixedNow.Add(-time.Hour)}
	suite.expectLoads(ctx, suite.gold)
	suite.invoiceRepo.On("SavePlanInvoice", ctx, mock.AnythingOfType("domain.Invoice"), suite.member.CurrentInvoice.InvoiceID).Return(nil).Once()

	_, err := suite.service.AssignPlan(ctx, suite.manager, dto.AssignPlanRequest{AccountID: suite.member.AccountID, PlanID: suite.gold.PlanID})

	suite.NoError(err)
}

func (suite *BillingServiceTestSuite) TestAssignPlan_ConcurrentChange() {
	ctx := context.Background()
	suite.expectLoads(ctx, suite.gold)
	suite.invoiceRepo.On("SavePlanInvoice", ctx, mock.AnythingOfType("domain.Invoice"), "").Return(apperrors.ErrConflict).Once()

	_, err := suite.service.AssignPlan(ctx, suite.manager, dto.AssignPlanRequest{AccountID: suite.member.AccountID, PlanID: suite.gold.PlanID})

	suite.Equal(409, apperrors.StatusCode(err))
}

func (suite *BillingServiceTestSuite) TestAssignPlan_Validation() {
	ctx := context.Background()
	negative := decimal.NewFromInt(-1)

	_, err := suite.service.AssignPlan(ctx, suite.manager, dto.AssignPlanRequest{AccountID: suite.member.AccountID, PlanID: suite.gold.PlanID, Discount: &negative})
	suite.ErrorIs(err, apperrors.ErrValidation)

	missing := uuid.NewString()
	suite.accountRepo.On("FindAccountByID", ctx, missing).Return(nil, apperrors.ErrNotFound).Once()
	_, err = suite.service.AssignPlan(ctx, suite.manager, dto.AssignPlanRequest{AccountID: missing, PlanID: suite.gold.PlanID})
	suite.Equal(404, apperrors.StatusCode(err))

	memberActor := domain.Principal{AccountID: suite.member.AccountID, Role: domain.RoleMember}
	_, err = suite.service.AssignPlan(ctx, memberActor, dto.AssignPlanRequest{AccountID: suite.member.AccountID, PlanID: suite.gold.PlanID})
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BillingServiceTestSuite) TestAssignPlan_DiscountScale() {
	ctx := context.Background()
	tooPrecise := decimal.RequireFromString("200.555")

	_, err := suite.service.AssignPlan(ctx, suite.manager, dto.AssignPlanRequest{AccountID: suite.member.AccountID, PlanID: suite.gold.PlanID, Discount: &tooPrecise})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(400, apperrors.StatusCode(err))
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal("discount", appErr.Fields[0].Field)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "SavePlanInvoice", mock.Anything, mock.Anything, mock.Anything)

	cents := decimal.RequireFromString("200.50")
	suite.expectLoads(ctx, suite.gold)
	suite.invoiceRepo.On("SavePlanInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.FinalAmount.Equal(decimal.RequireFromString("799.50")) && inv.Amount.Sub(inv.Discount).Equal(inv.FinalAmount)
	}), "").Return(nil).Once()

	_, err = suite.service.AssignPlan(ctx, suite.manager, dto.AssignPlanRequest{AccountID: suite.member.AccountID, PlanID: suite.gold.PlanID, Discount: &cents})

	suite.NoError(err)
	suite.invoiceRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestUpdateInvoice_DiscountScale() {
	ctx := context.Background()
	existing := &domain.Invoice{InvoiceID: uuid.NewString(), AccountID: suite.member.AccountID, Amount: suite.gold.Price, Status: domain.InvoiceStatusPaid}
	existing.Recalculate()
	suite.invoiceRepo.On("FindInvoiceByID", ctx, existing.InvoiceID).Return(existing, nil).Once()
	discount := decimal.RequireFromString("0.005")

	_, err := suite.service.UpdateInvoice(ctx, suite.manager, existing.InvoiceID, dto.UpdateInvoiceRequest{Discount: &discount})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) withSilverRunningFor30Days() {
	suite.member.CurrentPlan = suite.silver
	suite.member.CurrentInvoice = &domain.Invoice{
		InvoiceID: uuid.NewString(),
		AccountID: suite.member.AccountID,
		PlanID:    suite.silver.PlanID,
		DueDate:   fixedNow.Add(30 * 24 * time.Hour),
	}
}

func (suite *BillingServiceTestSuite) TestQuoteUpgrade() {
	ctx := context.Background()
	suite.withSilverRunningFor30Days()
	suite.expectLoads(ctx, suite.gold)

	quote, err := suite.service.QuoteUpgrade(ctx, suite.manager, suite.member.AccountID, suite.gold.PlanID)

	suite.Require().NoError(err)
	suite.Equal(30, quote.RemainingDays)
	suite.Equal(90, quote.FullDurationDays)
	suite.True(decimal.NewFromInt(300).Equal(quote.Discount), "discount %s", quote.Discount)
	suite.True(decimal.NewFromInt(600).Equal(quote.ExistingPlanValue), "existing %s", quote.ExistingPlanValue)
	suite.True(decimal.NewFromInt(700).Equal(quote.FinalAmount), "final %s", quote.FinalAmount)
	suite.Equal(suite.member.AccountID, quote.AccountID)
}

func (suite *BillingServiceTestSuite) TestUpgradePlan_UsesQuotedDiscountAndBypassesGuard() {
	ctx := context.Background()
	suite.withSilverRunningFor30Days()
	suite.expectLoads(ctx, suite.gold)
	suite.invoiceRepo.On("SavePlanInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Discount.Equal(decimal.NewFromInt(300)) && inv.FinalAmount.Equal(decimal.NewFromInt(700))
	}), suite.member.CurrentInvoice.InvoiceID).Return(nil).Once()

	invoice, err := suite.service.UpgradePlan(ctx, suite.manager, dto.UpgradePlanRequest{AccountID: suite.member.AccountID, PlanID: suite.gold.PlanID})

	suite.Require().NoError(err)
	suite.Equal(fixedNow.AddDate(0, 1, 0), invoice.DueDate)
	suite.invoiceRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestUpgradePlan_ExplicitDiscount() {
	ctx := context.Background()
	suite.withSilverRunningFor30Days()
	suite.expectLoads(ctx, suite.gold)
	discount := decimal.NewFromInt(50)
	suite.invoiceRepo.On("SavePlanInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Discount.Equal(discount)
	}), mock.Anything).Return(nil).Once()

	_, err := suite.service.UpgradePlan(ctx, suite.manager, dto.UpgradePlanRequest{AccountID: suite.member.AccountID, PlanID: suite.gold.PlanID, Discount: &discount})

	suite.NoError(err)
	suite.invoiceRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestUpdateInvoice_ChangePlan() {
	ctx := context.Background()
	existing := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		AccountID: suite.member.AccountID,
		PlanID:    suite.silver.PlanID,
		Amount:    suite.silver.Price,
		Discount:  decimal.NewFromInt(100),
		Status:    domain.InvoiceStatusPaid,
	}
	existing.Recalculate()
	suite.invoiceRepo.On("FindInvoiceByID", ctx, existing.InvoiceID).Return(existing, nil).Once()
	suite.planRepo.On("FindPlanByID", ctx, suite.gold.PlanID).Return(suite.gold, nil).Once()
	suite.invoiceRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	planID := suite.gold.PlanID
	status := domain.InvoiceStatusUnpaid
	updated, err := suite.service.UpdateInvoice(ctx, suite.manager, existing.InvoiceID, dto.UpdateInvoiceRequest{PlanID: &planID, Status: &status})

	suite.Require().NoError(err)
	suite.Equal("Updated to plan: Gold", updated.Description)
	suite.True(decimal.NewFromInt(900).Equal(updated.FinalAmount))
	suite.Equal(domain.InvoiceStatusUnpaid, updated.Status)
	suite.Equal(fixedNow, updated.LastUpdatedAt)
}

func (suite *BillingServiceTestSuite) TestGenerateInvoice() {
	ctx := context.Background()
	req := dto.GenerateInvoiceRequest{
		AccountID: suite.member.AccountID,
		Items: []dto.InvoiceItemRequest{
			{Name: "Locker", Amount: decimal.NewFromInt(100)},
			{Name: "Towel", Amount: decimal.NewFromInt(50)},
		},
	}
	suite.accountRepo.On("FindAccountByID", ctx, suite.member.AccountID).Return(suite.member, nil).Once()
	suite.invoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	invoice, err := suite.service.GenerateInvoice(ctx, suite.manager, req)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(150).Equal(invoice.Amount))
	suite.Equal("Locker: $100, Towel: $50", invoice.Description)
	suite.Equal(fixedNow, invoice.DueDate)
	suite.Empty(invoice.PlanID)

	wrongTotal := decimal.NewFromInt(200)
	req.TotalAmount = &wrongTotal
	_, err = suite.service.GenerateInvoice(ctx, suite.manager, req)
	suite.ErrorIs(err, apperrors.ErrValidation)

	req.TotalAmount = nil
	req.Items[1].Amount = decimal.RequireFromString("49.999")
	_, err = suite.service.GenerateInvoice(ctx, suite.manager, req)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal("items[1].amount", appErr.Fields[0].Field)
}

func (suite *BillingServiceTestSuite) TestGetInvoice_MemberSeesOnlyOwn() {
	ctx := context.Background()
	own := &domain.Invoice{InvoiceID: uuid.NewString(), AccountID: suite.member.AccountID}
	other := &domain.Invoice{InvoiceID: uuid.NewString(), AccountID: uuid.NewString()}
	actor := domain.Principal{AccountID: suite.member.AccountID, Role: domain.RoleMember}
	suite.invoiceRepo.On("FindInvoiceByID", ctx, own.InvoiceID).Return(own, nil).Once()
	suite.invoiceRepo.On("FindInvoiceByID", ctx, other.InvoiceID).Return(other, nil).Once()

	got, err := suite.service.GetInvoice(ctx, actor, own.InvoiceID)
	suite.Require().NoError(err)
	suite.Equal(own, got)

	_, err = suite.service.GetInvoice(ctx, actor, other.InvoiceID)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BillingServiceTestSuite) TestListAllInvoices_ManagersOnly() {
	ctx := context.Background()
	suite.invoiceRepo.On("ListInvoices", ctx, domain.DateRange{}).Return(nil, nil).Once()

	invoices, err := suite.service.ListAllInvoices(ctx, suite.manager, domain.DateRange{})
	suite.Require().NoError(err)
	suite.NotNil(invoices)

	coach := domain.Principal{AccountID: uuid.NewString(), Role: domain.RoleCoach}
	_, err = suite.service.ListAllInvoices(ctx, coach, domain.DateRange{})
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestBillingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}
