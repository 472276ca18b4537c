package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/gym_management_app/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (expense_id, type, description, amount, expense_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID, expense.Type, expense.Description, expense.Amount,
		expense.ExpenseDate, expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return mapWriteError(err, "expense "+expense.ExpenseID)
	}
	return nil
}

// ListExpenses joins the creator so the log shows who spent what, even for removed staff.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, period domain.DateRange) ([]domain.Expense, error) {
	where := &whereBuilder{}
	where.addPeriod("e.expense_date", period)
	query := `
		SELECT e.expense_id, e.type, e.description, e.amount, e.expense_date, e.created_by, e.created_at,
			COALESCE(a.name, ''), COALESCE(a.email, '')
		FROM expenses e
		LEFT JOIN accounts a ON a.account_id = e.created_by` + where.String() + `
		ORDER BY e.expense_date DESC, e.created_at DESC`

	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		var m models.Expense
		err := rows.Scan(&m.ExpenseID, &m.Type, &m.Description, &m.Amount, &m.ExpenseDate, &m.CreatedBy, &m.CreatedAt,
			&m.CreatorName, &m.CreatorEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, domain.Expense{
			ExpenseID:    m.ExpenseID,
			Type:         m.Type,
			Description:  m.Description,
			Amount:       m.Amount,
			ExpenseDate:  m.ExpenseDate,
			CreatedBy:    m.CreatedBy,
			CreatedAt:    m.CreatedAt,
			CreatorName:  m.CreatorName,
			CreatorEmail: m.CreatorEmail,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}
