package dto

import (
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest records an operational cost.
type CreateExpenseRequest struct {
	Type        string          `json:"type" binding:"required,max=50"`
	Description string          `json:"description" binding:"required,max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        *time.Time      `json:"date"` // Defaults to now
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID    string          `json:"expenseID"`
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	CreatedBy    string          `json:"createdBy"`
	CreatorName  string          `json:"creatorName,omitempty"`
	CreatorEmail string          `json:"creatorEmail,omitempty"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:    e.ExpenseID,
		Type:         e.Type,
		Description:  e.Description,
		Amount:       e.Amount,
		Date:         e.ExpenseDate,
		CreatedBy:    e.CreatedBy,
		CreatorName:  e.CreatorName,
		CreatorEmail: e.CreatorEmail,
	}
}

// ToListExpenseResponse converts expenses to DTOs
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}
