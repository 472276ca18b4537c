package dto

import (
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MemberReportRow is one member in a membership report.
type MemberReportRow struct {
	AccountID       string           `json:"accountID"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	CoachID         string           `json:"coachID,omitempty"`
	AttendanceCount int              `json:"attendanceCount"`
	LastAttendance  *time.Time       `json:"lastAttendance,omitempty"`
	Plan            *PlanResponse    `json:"plan,omitempty"`
	Invoice         *InvoiceResponse `json:"invoice,omitempty"`
}

// ToMemberReport converts summaries to report rows.
func ToMemberReport(summaries []domain.MemberSummary) []MemberReportRow {
	rows := make([]MemberReportRow, len(summaries))
	for i, s := range summaries {
		row := MemberReportRow{
			AccountID:       s.Account.AccountID,
			Name:            s.Account.Name,
			Email:           s.Account.Email,
			Phone:           s.Account.Phone,
			CoachID:         s.Account.CoachID,
			AttendanceCount: s.AttendanceCount,
			LastAttendance:  s.LastAttendance,
		}
		if s.CurrentPlan != nil {
			p := ToPlanResponse(s.CurrentPlan)
			row.Plan = &p
		}
		if s.CurrentInvoice != nil {
			inv := ToInvoiceResponse(s.CurrentInvoice)
			row.Invoice = &inv
		}
		rows[i] = row
	}
	return rows
}

// FinanceSummaryResponse totals income and expenses over a period.
type FinanceSummaryResponse struct {
	From         *time.Time      `json:"from,omitempty"`
	To           *time.Time      `json:"to,omitempty"`
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Net          decimal.Decimal `json:"net"`
	InvoiceCount int             `json:"invoiceCount"`
	ExpenseCount int             `json:"expenseCount"`
}

// ToFinanceSummaryResponse converts a domain.FinanceSummary
func ToFinanceSummaryResponse(s *domain.FinanceSummary) FinanceSummaryResponse {
	return FinanceSummaryResponse{
		From:         s.From,
		To:           s.To,
		Income:       s.Income,
		Expenses:     s.Expenses,
		Net:          s.Net,
		InvoiceCount: s.InvoiceCount,
		ExpenseCount: s.ExpenseCount,
	}
}
