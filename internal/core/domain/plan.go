package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is a purchasable membership tier.
type Plan struct {
	PlanID         string          `json:"planID"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	DurationMonths int             `json:"durationMonths"`
	Description    string          `json:"description"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// FullDurationDays approximates the plan length with 30-day months.
func (p Plan) FullDurationDays() int {
	return p.DurationMonths * DaysPerBillingMonth
}
