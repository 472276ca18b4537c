package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem is one element of the invoices.items JSONB array.
type InvoiceItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Invoice is the invoices row. PlanID is NULL for ad-hoc invoices.
type Invoice struct {
	InvoiceID   string          `db:"invoice_id"`
	AccountID   string          `db:"account_id"`
	PlanID      sql.NullString  `db:"plan_id"`
	Amount      decimal.Decimal `db:"amount"`
	Discount    decimal.Decimal `db:"discount"`
	FinalAmount decimal.Decimal `db:"final_amount"`
	PaymentDate time.Time       `db:"payment_date"`
	DueDate     time.Time       `db:"due_date"`
	Status      string          `db:"status"`
	Description string          `db:"description"`
	Items       []InvoiceItem   `db:"items"`
	AuditFields
}

// CurrentInvoice is the LATERAL-joined current plan invoice of an account together
// with its plan. Every column is NULL when the account never held a plan.
type CurrentInvoice struct {
	InvoiceID     sql.NullString
	PlanID        sql.NullString
	Amount        decimal.NullDecimal
	Discount      decimal.NullDecimal
	FinalAmount   decimal.NullDecimal
	PaymentDate   sql.NullTime
	DueDate       sql.NullTime
	Status        sql.NullString
	Description   sql.NullString
	CreatedAt     sql.NullTime
	CreatedBy     sql.NullString
	LastUpdatedAt sql.NullTime
	LastUpdatedBy sql.NullString

	PlanName           sql.NullString
	PlanPrice          decimal.NullDecimal
	PlanDurationMonths sql.NullInt32
	PlanDescription    sql.NullString
}
