package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	Type        string          `db:"type"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	ExpenseDate time.Time       `db:"expense_date"`
	CreatedBy   string          `db:"created_by"`
	CreatedAt   time.Time       `db:"created_at"`

	// joined from accounts
	CreatorName  string `db:"creator_name"`
	CreatorEmail string `db:"creator_email"`
}
