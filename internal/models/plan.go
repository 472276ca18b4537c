package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Plan is the plans row.
type Plan struct {
	PlanID         string          `db:"plan_id"`
	Name           string          `db:"name"`
	Price          decimal.Decimal `db:"price"`
	DurationMonths int             `db:"duration_months"`
	Description    string          `db:"description"`
	AuditFields
	DeletedAt sql.NullTime `db:"deleted_at"`
}
