package services

import (
	"context"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
)

// ReportingSvcFacade exposes the membership and finance reports.
type ReportingSvcFacade interface {
	InactiveAccounts(ctx context.Context, actor domain.Principal) ([]domain.MemberSummary, error)
	ExpiringPlans(ctx context.Context, actor domain.Principal) ([]domain.MemberSummary, error)
	PaymentsDue(ctx context.Context, actor domain.Principal) ([]domain.MemberSummary, error)
	FinanceSummary(ctx context.Context, actor domain.Principal, period domain.DateRange) (*domain.FinanceSummary, error)
}
