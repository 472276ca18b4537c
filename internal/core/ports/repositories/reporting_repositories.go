package repositories

import (
	"context"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines operations for retrieving report data
type ReportingRepository interface {
	// ListMemberSummaries returns every live member with attendance facts and the
	// current invoice and plan. A non-empty coachID limits the result to that coach's members.
	ListMemberSummaries(ctx context.Context, coachID string) ([]domain.MemberSummary, error)

	// SumIncome totals invoice final amounts by payment date within the range.
	SumIncome(ctx context.Context, period domain.DateRange) (total decimal.Decimal, count int, err error)

	// SumExpenses totals expense amounts by expense date within the range.
	SumExpenses(ctx context.Context, period domain.DateRange) (total decimal.Decimal, count int, err error)
}
