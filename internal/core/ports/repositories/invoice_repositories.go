package repositories

import (
	"context"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
)

// InvoiceReader defines read operations over the invoice ledger
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByAccount returns the account's ledger, newest first.
	ListInvoicesByAccount(ctx context.Context, accountID string) ([]domain.Invoice, error)

	// ListInvoices returns all invoices paid within the range, newest first.
	ListInvoices(ctx context.Context, period domain.DateRange) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations over the invoice ledger
type InvoiceWriter interface {
	// SaveInvoice appends an ad-hoc invoice.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// SavePlanInvoice appends a plan invoice in one transaction that locks the account row
	// and checks the account's current invoice is still expectedCurrentID ("" for none).
	// A changed current invoice yields apperrors.ErrConflict and nothing is written.
	SavePlanInvoice(ctx context.Context, invoice domain.Invoice, expectedCurrentID string) error

	// UpdateInvoice rewrites amount, discount, final amount, status, plan and description.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
