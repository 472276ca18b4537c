package services

import (
	"context"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/SscSPs/gym_management_app/internal/dto"
)

// ExpenseSvcFacade records operational costs.
type ExpenseSvcFacade interface {
	AddExpense(ctx context.Context, actor domain.Principal, req dto.CreateExpenseRequest) (*domain.Expense, error)
	ListExpenses(ctx context.Context, actor domain.Principal, period domain.DateRange) ([]domain.Expense, error)
}
