package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewExpenseService creates the expense log service
func NewExpenseService(repo portsrepo.ExpenseRepositoryFacade, options ...ServiceOption) portssvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService: newBaseService(options),
		expenseRepo: repo,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) AddExpense(ctx context.Context, actor domain.Principal, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if err := s.Authorize(ctx, actor, domain.OpManageExpenses); err != nil {
		return nil, err
	}

	now := s.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		Type:        strings.TrimSpace(req.Type),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		ExpenseDate: now,
		CreatedBy:   actor.AccountID,
		CreatedAt:   now,
	}
	if req.Date != nil {
		expense.ExpenseDate = *req.Date
	}

	var fields []apperrors.FieldError
	if expense.Type == "" {
		fields = append(fields, apperrors.FieldError{Field: "type", Message: "is required"})
	}
	if expense.Description == "" {
		fields = append(fields, apperrors.FieldError{Field: "description", Message: "is required"})
	}
	if !expense.Amount.GreaterThan(decimal.Zero) {
		fields = append(fields, apperrors.FieldError{Field: "amount", Message: "must be greater than 0"})
	} else if !domain.HasMoneyScale(expense.Amount) {
		fields = append(fields, apperrors.FieldError{Field: "amount", Message: "must have at most 2 decimal places"})
	}
	if len(fields) > 0 {
		return nil, apperrors.NewFieldValidationError("Invalid expense", fields)
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense")
		return nil, err
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("amount", expense.Amount.String()))
	return &expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, actor domain.Principal, period domain.DateRange) ([]domain.Expense, error) {
	if err := s.Authorize(ctx, actor, domain.OpManageExpenses); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, err
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, nil
}
