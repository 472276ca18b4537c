package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Only PRESENT marks count towards activity.
var memberSummaryQuery = `SELECT` + accountSelectColumns + `,
	COALESCE(att.present_count, 0), att.last_marked_at
FROM accounts a` + currentInvoiceJoin + `
LEFT JOIN LATERAL (
	SELECT COUNT(*) AS present_count, MAX(t.marked_at) AS last_marked_at
	FROM attendance t
	WHERE t.account_id = a.account_id AND t.status = 'PRESENT'
) att ON TRUE
`

// ListMemberSummaries returns every live member with attendance facts and current plan.
func (r *reportingRepository) ListMemberSummaries(ctx context.Context, coachID string) ([]domain.MemberSummary, error) {
	where := &whereBuilder{}
	where.addRaw("a.deleted_at IS NULL")
	where.add("a.role = ?", string(domain.RoleMember))
	if coachID != "" {
		where.add("a.coach_id = ?", coachID)
	}
	query := memberSummaryQuery + where.String() + ` ORDER BY a.name, a.created_at`

	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("error querying member summaries: %w", err)
	}
	defer rows.Close()

	result := []domain.MemberSummary{}
	for rows.Next() {
		var count int
		var last sql.NullTime
		account, err := scanAccount(rows, &count, &last)
		if err != nil {
			return nil, fmt.Errorf("error scanning member summary row: %w", err)
		}
		result = append(result, domain.MemberSummary{
			Account:         *account,
			AttendanceCount: count,
			LastAttendance:  timePtr(last.Time, last.Valid),
			CurrentInvoice:  account.CurrentInvoice,
			CurrentPlan:     account.CurrentPlan,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member summary rows: %w", err)
	}
	return result, nil
}

func (r *reportingRepository) sum(ctx context.Context, table, amountColumn, dateColumn string, period domain.DateRange) (decimal.Decimal, int, error) {
	where := &whereBuilder{}
	where.addPeriod(dateColumn, period)
	query := fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0), COUNT(*) FROM %s`, amountColumn, table) + where.String()

	var total decimal.Decimal
	var count int
	if err := r.Pool.QueryRow(ctx, query, where.args...).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("error summing %s: %w", table, err)
	}
	return total, count, nil
}

// SumIncome totals invoice final amounts by payment date.
func (r *reportingRepository) SumIncome(ctx context.Context, period domain.DateRange) (decimal.Decimal, int, error) {
	return r.sum(ctx, "invoices", "final_amount", "payment_date", period)
}

// SumExpenses totals expense amounts by expense date.
func (r *reportingRepository) SumExpenses(ctx context.Context, period domain.DateRange) (decimal.Decimal, int, error) {
	return r.sum(ctx, "expenses", "amount", "expense_date", period)
}
