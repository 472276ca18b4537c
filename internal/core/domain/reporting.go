package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberSummary is one member with the facts the reports are derived from.
type MemberSummary struct {
	Account         Account    `json:"account"`
	AttendanceCount int        `json:"attendanceCount"`
	LastAttendance  *time.Time `json:"lastAttendance,omitempty"`
	CurrentInvoice  *Invoice   `json:"currentInvoice,omitempty"`
	CurrentPlan     *Plan      `json:"currentPlan,omitempty"`
}

// ReportRules holds the windows used by the membership reports.
type ReportRules struct {
	InactivityThreshold time.Duration
	PaymentDueWindow    time.Duration
}

// DefaultReportRules uses a seven day window for both reports.
var DefaultReportRules = ReportRules{
	InactivityThreshold: 7 * 24 * time.Hour,
	PaymentDueWindow:    7 * 24 * time.Hour,
}

// IsInactive: never attended, or last attended before now - threshold.
func (r ReportRules) IsInactive(s MemberSummary, now time.Time) bool {
	if s.AttendanceCount == 0 || s.LastAttendance == nil {
		return true
	}
	return s.LastAttendance.Before(now.Add(-r.InactivityThreshold))
}

// IsExpired: the current invoice is due on or before now.
func (r ReportRules) IsExpired(s MemberSummary, now time.Time) bool {
	if s.CurrentInvoice == nil {
		return false
	}
	return !s.CurrentInvoice.DueDate.After(now)
}

// IsPaymentDue: the current invoice falls due within [now, now+window].
func (r ReportRules) IsPaymentDue(s MemberSummary, now time.Time) bool {
	if s.CurrentInvoice == nil {
		return false
	}
	due := s.CurrentInvoice.DueDate
	return !due.Before(now) && !due.After(now.Add(r.PaymentDueWindow))
}

// FilterSummaries keeps the summaries accepted by keep.
func FilterSummaries(in []MemberSummary, now time.Time, keep func(MemberSummary, time.Time) bool) []MemberSummary {
	out := make([]MemberSummary, 0, len(in))
	for _, s := range in {
		if keep(s, now) {
			out = append(out, s)
		}
	}
	return out
}

// FinanceSummary totals income and expenses over a period.
type FinanceSummary struct {
	From         *time.Time      `json:"from,omitempty"`
	To           *time.Time      `json:"to,omitempty"`
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Net          decimal.Decimal `json:"net"`
	InvoiceCount int             `json:"invoiceCount"`
	ExpenseCount int             `json:"expenseCount"`
}
