package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DaysPerBillingMonth is the month length used for pro-ration.
const DaysPerBillingMonth = 30

const (
	InvoiceStatusPaid   = "paid"
	InvoiceStatusUnpaid = "unpaid"
)

// MoneyScale is the number of decimal places stored for every amount.
const MoneyScale = 2

// HasMoneyScale reports whether d carries no more than MoneyScale decimal places.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}

// InvoiceItem is one line of an ad-hoc invoice.
type InvoiceItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Invoice is an entry in an account's append-only billing ledger.
type Invoice struct {
	InvoiceID   string          `json:"invoiceID"`
	AccountID   string          `json:"accountID"`
	PlanID      string          `json:"planID,omitempty"` // empty for ad-hoc invoices
	Amount      decimal.Decimal `json:"amount"`
	Discount    decimal.Decimal `json:"discount"`
	FinalAmount decimal.Decimal `json:"finalAmount"`
	PaymentDate time.Time       `json:"paymentDate"`
	DueDate     time.Time       `json:"dueDate"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	Items       []InvoiceItem   `json:"items,omitempty"`
	AuditFields
}

// Recalculate enforces finalAmount = amount - discount.
func (i *Invoice) Recalculate() {
	i.FinalAmount = FinalAmount(i.Amount, i.Discount)
}

// IsActiveAt reports whether the invoice still covers now.
func (i Invoice) IsActiveAt(now time.Time) bool {
	return now.Before(i.DueDate)
}

// FinalAmount is amount minus discount. The result is not floored at zero.
func FinalAmount(amount, discount decimal.Decimal) decimal.Decimal {
	return amount.Sub(discount)
}

// PlanDueDate adds the plan duration in calendar months.
func PlanDueDate(from time.Time, months int) time.Time {
	return from.AddDate(0, months, 0)
}

// PlanAssignmentDescription is the ledger text for a plan assignment.
func PlanAssignmentDescription(planName, accountName string, months int) string {
	return fmt.Sprintf("Plan assigned: %s to %s for %d Months", planName, accountName, months)
}

// PlanChangeDescription is the ledger text when an invoice is moved to another plan.
func PlanChangeDescription(planName string) string {
	return "Updated to plan: " + planName
}

// ItemsTotal sums the item amounts.
func ItemsTotal(items []InvoiceItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

// ItemsDescription renders items as "name: $amount, ...".
func ItemsDescription(items []InvoiceItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s: $%s", it.Name, it.Amount.String()))
	}
	return strings.Join(parts, ", ")
}

// UpgradeQuote is the pro-rated price of moving an account to a new plan.
type UpgradeQuote struct {
	AccountID         string          `json:"accountID"`
	CurrentPlanID     string          `json:"currentPlanID,omitempty"`
	NewPlanID         string          `json:"newPlanID"`
	DueDate           *time.Time      `json:"dueDate,omitempty"`
	RemainingDays     int             `json:"remainingDays"`
	FullDurationDays  int             `json:"fullDurationDays"`
	ExistingPlanValue decimal.Decimal `json:"existingPlanValue"`
	Discount          decimal.Decimal `json:"discount"`
	NewPlanPrice      decimal.Decimal `json:"newPlanPrice"`
	FinalAmount       decimal.Decimal `json:"finalAmount"`
}

// RemainingDays counts whole days from now until due, truncated and never negative.
func RemainingDays(due, now time.Time) int {
	if !now.Before(due) {
		return 0
	}
	return int(due.Sub(now) / (24 * time.Hour))
}

// QuoteUpgrade pro-rates the unused part of the current plan into a discount on newPlan.
// current and currentPlan may be nil when the account has never held a plan.
//
// When more days remain than the current plan's full duration, the discount is
// the whole new plan price. Otherwise
//
//	existingPlanValue = price / fullDays * (fullDays - remainingDays)
//	discount          = price * remainingDays / fullDays
func QuoteUpgrade(current *Invoice, currentPlan *Plan, newPlan Plan, now time.Time) UpgradeQuote {
	q := UpgradeQuote{
		NewPlanID:         newPlan.PlanID,
		NewPlanPrice:      newPlan.Price,
		ExistingPlanValue: decimal.Zero,
		Discount:          decimal.Zero,
	}
	if current != nil {
		q.AccountID = current.AccountID
		due := current.DueDate
		q.DueDate = &due
	}
	if current == nil || currentPlan == nil || currentPlan.DurationMonths <= 0 {
		q.FinalAmount = FinalAmount(q.NewPlanPrice, q.Discount)
		return q
	}

	q.CurrentPlanID = currentPlan.PlanID
	q.RemainingDays = RemainingDays(current.DueDate, now)
	q.FullDurationDays = currentPlan.FullDurationDays()

	full := decimal.NewFromInt(int64(q.FullDurationDays))
	remaining := decimal.NewFromInt(int64(q.RemainingDays))

	if q.RemainingDays > q.FullDurationDays {
		q.Discount = newPlan.Price
	} else {
		q.ExistingPlanValue = currentPlan.Price.Div(full).Mul(full.Sub(remaining)).Round(2)
		q.Discount = currentPlan.Price.Mul(remaining).Div(full).Round(2)
	}
	q.FinalAmount = FinalAmount(q.NewPlanPrice, q.Discount)
	return q
}
