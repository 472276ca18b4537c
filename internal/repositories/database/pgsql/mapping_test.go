package pgsql

import (
	"database/sql"
	"testing"
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/SscSPs/gym_management_app/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainCurrentInvoice(t *testing.T) {
	due := time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)

	t.Run("no plan history", func(t *testing.T) {
		invoice, plan := toDomainCurrentInvoice("acc-1", models.CurrentInvoice{})
		assert.Nil(t, invoice)
		assert.Nil(t, plan)
	})

	t.Run("invoice with plan", func(t *testing.T) {
		invoice, plan := toDomainCurrentInvoice("acc-1", models.CurrentInvoice{
			InvoiceID:          sql.NullString{String: "inv-1", Valid: true},
			PlanID:             sql.NullString{String: "plan-1", Valid: true},
			FinalAmount:        decimal.NullDecimal{Decimal: decimal.NewFromInt(800), Valid: true},
			DueDate:            sql.NullTime{Time: due, Valid: true},
			PlanName:           sql.NullString{String: "Gold", Valid: true},
			PlanPrice:          decimal.NullDecimal{Decimal: decimal.NewFromInt(1000), Valid: true},
			PlanDurationMonths: sql.NullInt32{Int32: 1, Valid: true},
		})
		require.NotNil(t, invoice)
		require.NotNil(t, plan)
		assert.Equal(t, "acc-1", invoice.AccountID)
		assert.Equal(t, due, invoice.DueDate)
		assert.True(t, decimal.NewFromInt(800).Equal(invoice.FinalAmount))
		assert.Equal(t, "Gold", plan.Name)
		assert.Equal(t, 1, plan.DurationMonths)
	})

	t.Run("invoice whose plan row is gone", func(t *testing.T) {
		invoice, plan := toDomainCurrentInvoice("acc-1", models.CurrentInvoice{
			InvoiceID: sql.NullString{String: "inv-1", Valid: true},
			PlanID:    sql.NullString{String: "plan-1", Valid: true},
		})
		assert.NotNil(t, invoice)
		assert.Nil(t, plan)
	})
}

func TestAccountModelRoundTrip_OptionalColumns(t *testing.T) {
	dob := time.Date(1995, time.June, 1, 0, 0, 0, 0, time.UTC)
	account := domain.Account{
		AccountID:   "acc-1",
		Name:        "Ravi",
		Role:        domain.RoleMember,
		DateOfBirth: &dob,
	}

	m := toModelAccount(account)
	assert.True(t, m.DateOfBirth.Valid)
	assert.False(t, m.LeftAt.Valid)
	assert.False(t, m.CoachID.Valid, "empty coach is stored as NULL")

	back := toDomainAccount(m)
	require.NotNil(t, back.DateOfBirth)
	assert.Equal(t, dob, *back.DateOfBirth)
	assert.Nil(t, back.LeftAt)
	assert.Empty(t, back.CoachID)
}

func TestInvoiceModel_ItemsAndAdHocPlan(t *testing.T) {
	invoice := domain.Invoice{
		InvoiceID: "inv-2",
		Items: []domain.InvoiceItem{
			{Name: "Locker", Amount: decimal.NewFromInt(100)},
		},
	}

	m := toModelInvoice(invoice)
	assert.False(t, m.PlanID.Valid, "ad-hoc invoices have no plan")
	require.Len(t, m.Items, 1)

	back := toDomainInvoice(m)
	assert.Empty(t, back.PlanID)
	assert.Equal(t, "Locker", back.Items[0].Name)
}
