package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
)

// reportingService implements the membership and finance reports
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	rules         domain.ReportRules
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository, rules domain.ReportRules, options ...ServiceOption) portssvc.ReportingSvcFacade {
	if rules.InactivityThreshold <= 0 {
		rules.InactivityThreshold = domain.DefaultReportRules.InactivityThreshold
	}
	if rules.PaymentDueWindow <= 0 {
		rules.PaymentDueWindow = domain.DefaultReportRules.PaymentDueWindow
	}
	return &reportingService{
		BaseService:   newBaseService(options),
		reportingRepo: repo,
		rules:         rules,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// memberReport loads the members visible to actor and keeps those matching keep.
func (s *reportingService) memberReport(ctx context.Context, actor domain.Principal, name string, keep func(domain.MemberSummary, time.Time) bool) ([]domain.MemberSummary, error) {
	if err := s.Authorize(ctx, actor, domain.OpViewReports); err != nil {
		return nil, err
	}

	coachID := ""
	if actor.Role == domain.RoleCoach {
		coachID = actor.AccountID
	}

	summaries, err := s.reportingRepo.ListMemberSummaries(ctx, coachID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load member summaries", slog.String("report", name))
		return nil, err
	}

	result := domain.FilterSummaries(summaries, s.Now(), keep)
	s.LogDebug(ctx, "Report generated", slog.String("report", name), slog.Int("rows", len(result)))
	return result, nil
}

func (s *reportingService) InactiveAccounts(ctx context.Context, actor domain.Principal) ([]domain.MemberSummary, error) {
	return s.memberReport(ctx, actor, "inactive_accounts", s.rules.IsInactive)
}

func (s *reportingService) ExpiringPlans(ctx context.Context, actor domain.Principal) ([]domain.MemberSummary, error) {
	return s.memberReport(ctx, actor, "expiring_plans", s.rules.IsExpired)
}

func (s *reportingService) PaymentsDue(ctx context.Context, actor domain.Principal) ([]domain.MemberSummary, error) {
	return s.memberReport(ctx, actor, "payments_due", s.rules.IsPaymentDue)
}

func (s *reportingService) FinanceSummary(ctx context.Context, actor domain.Principal, period domain.DateRange) (*domain.FinanceSummary, error) {
	if err := s.Authorize(ctx, actor, domain.OpViewFinance); err != nil {
		return nil, err
	}

	income, invoiceCount, err := s.reportingRepo.SumIncome(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum income")
		return nil, err
	}
	expenses, expenseCount, err := s.reportingRepo.SumExpenses(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum expenses")
		return nil, err
	}

	return &domain.FinanceSummary{
		From:         period.From,
		To:           period.To,
		Income:       income,
		Expenses:     expenses,
		Net:          income.Sub(expenses),
		InvoiceCount: invoiceCount,
		ExpenseCount: expenseCount,
	}, nil
}
