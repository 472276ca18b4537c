package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/SscSPs/gym_management_app/internal/core/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpenseService_AddExpense(t *testing.T) {
	manager := domain.Principal{AccountID: uuid.NewString(), Role: domain.RoleManager}
	coach := domain.Principal{AccountID: uuid.NewString(), Role: domain.RoleCoach}
	spentOn := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		actor    domain.Principal
		req      dto.CreateExpenseRequest
		wantErr  error
		wantDate time.Time
	}{
		{
			name:     "defaults date to now",
			actor:    manager,
			req:      dto.CreateExpenseRequest{Type: "Utilities", Description: "Electricity", Amount: decimal.NewFromInt(3200)},
			wantDate: fixedNow,
		},
		{
			name:     "explicit date",
			actor:    manager,
			req:      dto.CreateExpenseRequest{Type: "Repairs", Description: "Treadmill belt", Amount: decimal.NewFromInt(900), Date: &spentOn},
			wantDate: spentOn,
		},
		{
			name:    "zero amount",
			actor:   manager,
			req:     dto.CreateExpenseRequest{Type: "Misc", Description: "Nothing", Amount: decimal.Zero},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "sub-cent amount",
			actor:   manager,
			req:     dto.CreateExpenseRequest{Type: "Misc", Description: "Chalk", Amount: decimal.RequireFromString("12.345")},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "coach",
			actor:   coach,
			req:     dto.CreateExpenseRequest{Type: "Misc", Description: "Snacks", Amount: decimal.NewFromInt(5)},
			wantErr: apperrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := new(MockExpenseRepository)
			svc := services.NewExpenseService(repo, services.WithClock(fixedClock))
			if tt.wantErr == nil {
				repo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()
			}

			expense, err := svc.AddExpense(ctx, tt.actor, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "SaveExpense", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, expense.ExpenseDate)
			assert.Equal(t, tt.actor.AccountID, expense.CreatedBy)
			repo.AssertExpectations(t)
		})
	}
}

func TestExpenseService_ListExpenses(t *testing.T) {
	ctx := context.Background()
	repo := new(MockExpenseRepository)
	svc := services.NewExpenseService(repo)
	owner := domain.Principal{AccountID: uuid.NewString(), Role: domain.RoleOwner}
	repo.On("ListExpenses", ctx, domain.DateRange{}).Return(nil, nil).Once()

	expenses, err := svc.ListExpenses(ctx, owner, domain.DateRange{})

	require.NoError(t, err)
	assert.NotNil(t, expenses)
	assert.Empty(t, expenses)
}
