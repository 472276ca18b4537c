package handlers

import (
	"context"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccount(ctx context.Context, actor domain.Principal, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, actor, accountID)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}

func (m *MockAccountService) ListAccountsByRole(ctx context.Context, actor domain.Principal, role domain.Role) ([]domain.Account, error) {
	args := m.Called(ctx, actor, role)
	accs, _ := args.Get(0).([]domain.Account)
	return accs, args.Error(1)
}

func (m *MockAccountService) SearchMembersByEmail(ctx context.Context, actor domain.Principal, email string) ([]domain.Account, error) {
	args := m.Called(ctx, actor, email)
	accs, _ := args.Get(0).([]domain.Account)
	return accs, args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, actor domain.Principal, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, actor, req)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, actor domain.Principal, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, actor, accountID, req)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}

func (m *MockAccountService) AssignCoach(ctx context.Context, actor domain.Principal, memberID, coachID string) (*domain.Account, error) {
	args := m.Called(ctx, actor, memberID, coachID)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}

func (m *MockAccountService) RemoveAccount(ctx context.Context, actor domain.Principal, accountID string) error {
	args := m.Called(ctx, actor, accountID)
	return args.Error(0)
}

func (m *MockAccountService) EnsureOwner(ctx context.Context, owner portssvc.OwnerSeed) (*domain.Account, bool, error) {
	args := m.Called(ctx, owner)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Bool(1), args.Error(2)
}

type MockAuthService struct {
	mock.Mock
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*portssvc.AuthSession, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*portssvc.AuthSession)
	return s, args.Error(1)
}

func (m *MockAuthService) GoogleLogin(ctx context.Context, idToken string) (*portssvc.AuthSession, error) {
	args := m.Called(ctx, idToken)
	s, _ := args.Get(0).(*portssvc.AuthSession)
	return s, args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, actor domain.Principal) (*domain.Account, error) {
	args := m.Called(ctx, actor)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, actor domain.Principal, oldPassword, newPassword string) error {
	return m.Called(ctx, actor, oldPassword, newPassword).Error(0)
}

type MockBillingService struct {
	mock.Mock
}

var _ portssvc.BillingSvcFacade = (*MockBillingService)(nil)

func (m *MockBillingService) AssignPlan(ctx context.Context, actor domain.Principal, req dto.AssignPlanRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, req)
	inv, _ := args.Get(0).(*domain.Invoice)
	return inv, args.Error(1)
}

func (m *MockBillingService) QuoteUpgrade(ctx context.Context, actor domain.Principal, accountID, newPlanID string) (*domain.UpgradeQuote, error) {
	args := m.Called(ctx, actor, accountID, newPlanID)
	q, _ := args.Get(0).(*domain.UpgradeQuote)
	return q, args.Error(1)
}

func (m *MockBillingService) UpgradePlan(ctx context.Context, actor domain.Principal, req dto.UpgradePlanRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, req)
	inv, _ := args.Get(0).(*domain.Invoice)
	return inv, args.Error(1)
}

func (m *MockBillingService) UpdateInvoice(ctx context.Context, actor domain.Principal, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, invoiceID, req)
	inv, _ := args.Get(0).(*domain.Invoice)
	return inv, args.Error(1)
}

func (m *MockBillingService) GenerateInvoice(ctx context.Context, actor domain.Principal, req dto.GenerateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, req)
	inv, _ := args.Get(0).(*domain.Invoice)
	return inv, args.Error(1)
}

func (m *MockBillingService) GetInvoice(ctx context.Context, actor domain.Principal, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, invoiceID)
	inv, _ := args.Get(0).(*domain.Invoice)
	return inv, args.Error(1)
}

func (m *MockBillingService) ListInvoicesByAccount(ctx context.Context, actor domain.Principal, accountID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, actor, accountID)
	invs, _ := args.Get(0).([]domain.Invoice)
	return invs, args.Error(1)
}

func (m *MockBillingService) ListAllInvoices(ctx context.Context, actor domain.Principal, period domain.DateRange) ([]domain.Invoice, error) {
	args := m.Called(ctx, actor, period)
	invs, _ := args.Get(0).([]domain.Invoice)
	return invs, args.Error(1)
}

type MockAttendanceService struct {
	mock.Mock
}

var _ portssvc.AttendanceSvcFacade = (*MockAttendanceService)(nil)

func (m *MockAttendanceService) MarkAttendance(ctx context.Context, actor domain.Principal, req dto.MarkAttendanceRequest) (*domain.Attendance, bool, error) {
	args := m.Called(ctx, actor, req)
	rec, _ := args.Get(0).(*domain.Attendance)
	return rec, args.Bool(1), args.Error(2)
}

func (m *MockAttendanceService) ListAttendance(ctx context.Context, actor domain.Principal, accountID string, period domain.DateRange) ([]domain.Attendance, error) {
	args := m.Called(ctx, actor, accountID, period)
	recs, _ := args.Get(0).([]domain.Attendance)
	return recs, args.Error(1)
}

type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

func (m *MockReportingService) InactiveAccounts(ctx context.Context, actor domain.Principal) ([]domain.MemberSummary, error) {
	args := m.Called(ctx, actor)
	s, _ := args.Get(0).([]domain.MemberSummary)
	return s, args.Error(1)
}

func (m *MockReportingService) ExpiringPlans(ctx context.Context, actor domain.Principal) ([]domain.MemberSummary, error) {
	args := m.Called(ctx, actor)
	s, _ := args.Get(0).([]domain.MemberSummary)
	return s, args.Error(1)
}

func (m *MockReportingService) PaymentsDue(ctx context.Context, actor domain.Principal) ([]domain.MemberSummary, error) {
	args := m.Called(ctx, actor)
	s, _ := args.Get(0).([]domain.MemberSummary)
	return s, args.Error(1)
}

func (m *MockReportingService) FinanceSummary(ctx context.Context, actor domain.Principal, period domain.DateRange) (*domain.FinanceSummary, error) {
	args := m.Called(ctx, actor, period)
	s, _ := args.Get(0).(*domain.FinanceSummary)
	return s, args.Error(1)
}
