package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an operational cost of the gym.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`

	// Filled on listing.
	CreatorName  string `json:"creatorName,omitempty"`
	CreatorEmail string `json:"creatorEmail,omitempty"`
}

// DateRange is an optional inclusive time window.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}
