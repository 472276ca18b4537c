package repositories

import (
	"context"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
)

// ExpenseRepositoryFacade defines operations over the expense log
type ExpenseRepositoryFacade interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// ListExpenses returns expenses dated within the range, newest first, with creator details.
	ListExpenses(ctx context.Context, period domain.DateRange) ([]domain.Expense, error)
}
