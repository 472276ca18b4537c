package services

import (
	"context"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/SscSPs/gym_management_app/internal/dto"
)

// PlanAssignmentSvc assigns and upgrades plans, appending an invoice each time.
type PlanAssignmentSvc interface {
	// AssignPlan bills the plan to the account. It fails with a conflict while the
	// current invoice is not yet due, unless req.Force is set.
	AssignPlan(ctx context.Context, actor domain.Principal, req dto.AssignPlanRequest) (*domain.Invoice, error)

	// QuoteUpgrade pro-rates the unused part of the current plan.
	QuoteUpgrade(ctx context.Context, actor domain.Principal, accountID, newPlanID string) (*domain.UpgradeQuote, error)

	// UpgradePlan bills the new plan with the quoted discount unless one is given.
	UpgradePlan(ctx context.Context, actor domain.Principal, req dto.UpgradePlanRequest) (*domain.Invoice, error)
}

// InvoiceSvc reads and edits the invoice ledger.
type InvoiceSvc interface {
	UpdateInvoice(ctx context.Context, actor domain.Principal, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)
	GenerateInvoice(ctx context.Context, actor domain.Principal, req dto.GenerateInvoiceRequest) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, actor domain.Principal, invoiceID string) (*domain.Invoice, error)
	ListInvoicesByAccount(ctx context.Context, actor domain.Principal, accountID string) ([]domain.Invoice, error)
	ListAllInvoices(ctx context.Context, actor domain.Principal, period domain.DateRange) ([]domain.Invoice, error)
}

// BillingSvcFacade combines plan assignment and invoice operations
type BillingSvcFacade interface {
	PlanAssignmentSvc
	InvoiceSvc
}
