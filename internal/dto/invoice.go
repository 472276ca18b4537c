package dto

import (
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AssignPlanRequest assigns a plan to an account and bills it.
type AssignPlanRequest struct {
	AccountID string           `json:"accountID" binding:"required,uuid"`
	PlanID    string           `json:"planID" binding:"required,uuid"`
	Discount  *decimal.Decimal `json:"discount"` // Defaults to 0
	// Force assigns even when the account's current invoice is not yet due.
	Force bool `json:"force"`
}

// UpgradePlanRequest moves an account onto a new plan with a pro-rated discount.
type UpgradePlanRequest struct {
	AccountID string           `json:"accountID" binding:"required,uuid"`
	PlanID    string           `json:"planID" binding:"required,uuid"`
	Discount  *decimal.Decimal `json:"discount"` // Defaults to the quoted discount
}

// UpgradeQuoteParams defines query parameters for an upgrade quote.
type UpgradeQuoteParams struct {
	AccountID string `form:"accountID" binding:"required,uuid"`
	PlanID    string `form:"planID" binding:"required,uuid"`
}

// UpdateInvoiceRequest changes an existing invoice. Absent fields are unchanged.
type UpdateInvoiceRequest struct {
	Discount *decimal.Decimal `json:"discount"`
	Status   *string          `json:"status" binding:"omitempty,min=1,max=32"`
	PlanID   *string          `json:"planID" binding:"omitempty,uuid"`
}

// InvoiceItemRequest is one line of an ad-hoc invoice.
type InvoiceItemRequest struct {
	Name   string          `json:"name" binding:"required,max=100"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// GenerateInvoiceRequest creates an ad-hoc invoice from line items.
type GenerateInvoiceRequest struct {
	AccountID   string               `json:"accountID" binding:"required,uuid"`
	Items       []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount    *decimal.Decimal     `json:"discount"`
	TotalAmount *decimal.Decimal     `json:"totalAmount"` // Must equal the item sum when given
	Status      *string              `json:"status" binding:"omitempty,min=1,max=32"`
}

// ToDomainItems converts request items.
func (r GenerateInvoiceRequest) ToDomainItems() []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = domain.InvoiceItem{Name: it.Name, Amount: it.Amount}
	}
	return items
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID   string               `json:"invoiceID"`
	AccountID   string               `json:"accountID"`
	PlanID      string               `json:"planID,omitempty"`
	Amount      decimal.Decimal      `json:"amount"`
	Discount    decimal.Decimal      `json:"discount"`
	FinalAmount decimal.Decimal      `json:"finalAmount"`
	PaymentDate time.Time            `json:"paymentDate"`
	DueDate     time.Time            `json:"dueDate"`
	Status      string               `json:"status"`
	Description string               `json:"description"`
	Items       []domain.InvoiceItem `json:"items,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	CreatedBy   string               `json:"createdBy"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:   inv.InvoiceID,
		AccountID:   inv.AccountID,
		PlanID:      inv.PlanID,
		Amount:      inv.Amount,
		Discount:    inv.Discount,
		FinalAmount: inv.FinalAmount,
		PaymentDate: inv.PaymentDate,
		DueDate:     inv.DueDate,
		Status:      inv.Status,
		Description: inv.Description,
		Items:       inv.Items,
		CreatedAt:   inv.CreatedAt,
		CreatedBy:   inv.CreatedBy,
	}
}

// ToListInvoiceResponse converts invoices to DTOs
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}
