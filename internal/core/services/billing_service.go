package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// billingService assigns plans and keeps the invoice ledger.
type billingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	planRepo    portsrepo.PlanReader
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// NewBillingService creates the plan assignment and invoice service
func NewBillingService(
	accountRepo portsrepo.AccountReader,
	planRepo portsrepo.PlanReader,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	options ...ServiceOption,
) portssvc.BillingSvcFacade {
	return &billingService{
		BaseService: newBaseService(options),
		accountRepo: accountRepo,
		planRepo:    planRepo,
		invoiceRepo: invoiceRepo,
	}
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

func (s *billingService) loadAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, s.notFoundOr(ctx, err, "Account not found", "Failed to load account", slog.String("account_id", accountID))
	}
	return account, nil
}

func (s *billingService) loadPlan(ctx context.Context, planID string) (*domain.Plan, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, s.notFoundOr(ctx, err, "Plan not found", "Failed to load plan", slog.String("plan_id", planID))
	}
	return plan, nil
}

func parseDiscount(d *decimal.Decimal) (decimal.Decimal, error) {
	if d == nil {
		return decimal.Zero, nil
	}
	if d.IsNegative() {
		return decimal.Zero, apperrors.NewFieldValidationError("Invalid discount", []apperrors.FieldError{{Field: "discount", Message: "must not be negative"}})
	}
	if !domain.HasMoneyScale(*d) {
		return decimal.Zero, apperrors.NewFieldValidationError("Invalid discount", []apperrors.FieldError{{Field: "discount", Message: "must have at most 2 decimal places"}})
	}
	return *d, nil
}

func currentInvoiceID(a *domain.Account) string {
	if a.CurrentInvoice == nil {
		return ""
	}
	return a.CurrentInvoice.InvoiceID
}

// appendPlanInvoice builds the invoice for plan and writes it against the account's current invoice.
func (s *billingService) appendPlanInvoice(ctx context.Context, actor domain.Principal, account *domain.Account, plan *domain.Plan, discount decimal.Decimal, kind string) (*domain.Invoice, error) {
	now := s.Now()
	invoice := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		AccountID:   account.AccountID,
		PlanID:      plan.PlanID,
		Amount:      plan.Price,
		Discount:    discount,
		PaymentDate: now,
		DueDate:     domain.PlanDueDate(now, plan.DurationMonths),
		Status:      domain.InvoiceStatusPaid,
		Description: domain.PlanAssignmentDescription(plan.Name, account.Name, plan.DurationMonths),
		AuditFields: domain.NewAuditFields(actor.AccountID, now),
	}
	invoice.Recalculate()

	if err := s.invoiceRepo.SavePlanInvoice(ctx, invoice, currentInvoiceID(account)); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogWarn(ctx, "Concurrent plan change detected", slog.String("account_id", account.AccountID))
			return nil, apperrors.NewConflictError("The account's plan was changed by another request, please retry")
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Account not found")
		}
		s.LogError(ctx, err, "Failed to save plan invoice",
			slog.String("account_id", account.AccountID),
			slog.String("plan_id", plan.PlanID))
		return nil, err
	}

	s.metrics.InvoiceCreated(kind)
	s.LogInfo(ctx, "Plan invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("account_id", account.AccountID),
		slog.String("plan_id", plan.PlanID),
		slog.String("final_amount", invoice.FinalAmount.String()))
	return &invoice, nil
}

func (s *billingService) AssignPlan(ctx context.Context, actor domain.Principal, req dto.AssignPlanRequest) (*domain.Invoice, error) {
	if err := s.Authorize(ctx, actor, domain.OpAssignPlan); err != nil {
		return nil, err
	}
	discount, err := parseDiscount(req.Discount)
	if err != nil {
		return nil, err
	}
	account, err := s.loadAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	plan, err := s.loadPlan(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	if current := account.CurrentInvoice; current != nil && current.IsActiveAt(s.Now()) && !req.Force {
		return nil, apperrors.NewConflictError(fmt.Sprintf(
			"Account already has an active plan until %s, use force to assign anyway or upgrade instead",
			current.DueDate.Format("2006-01-02")))
	}

	return s.appendPlanInvoice(ctx, actor, account, plan, discount, "assign")
}

func (s *billingService) QuoteUpgrade(ctx context.Context, actor domain.Principal, accountID, newPlanID string) (*domain.UpgradeQuote, error) {
	if err := s.Authorize(ctx, actor, domain.OpAssignPlan); err != nil {
		return nil, err
	}
	account, err := s.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	plan, err := s.loadPlan(ctx, newPlanID)
	if err != nil {
		return nil, err
	}

	quote := domain.QuoteUpgrade(account.CurrentInvoice, account.CurrentPlan, *plan, s.Now())
	quote.AccountID = account.AccountID
	return &quote, nil
}

func (s *billingService) UpgradePlan(ctx context.Context, actor domain.Principal, req dto.UpgradePlanRequest) (*domain.Invoice, error) {
	if err := s.Authorize(ctx, actor, domain.OpAssignPlan); err != nil {
		return nil, err
	}
	account, err := s.loadAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	plan, err := s.loadPlan(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	discount := domain.QuoteUpgrade(account.CurrentInvoice, account.CurrentPlan, *plan, s.Now()).Discount
	if req.Discount != nil {
		if discount, err = parseDiscount(req.Discount); err != nil {
			return nil, err
		}
	}

	return s.appendPlanInvoice(ctx, actor, account, plan, discount, "upgrade")
}

func (s *billingService) loadInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, s.notFoundOr(ctx, err, "Invoice not found", "Failed to load invoice", slog.String("invoice_id", invoiceID))
	}
	return invoice, nil
}

func (s *billingService) UpdateInvoice(ctx context.Context, actor domain.Principal, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	if err := s.Authorize(ctx, actor, domain.OpManageInvoices); err != nil {
		return nil, err
	}
	invoice, err := s.loadInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.PlanID != nil {
		plan, err := s.loadPlan(ctx, *req.PlanID)
		if err != nil {
			return nil, err
		}
		invoice.PlanID = plan.PlanID
		invoice.Amount = plan.Price
		invoice.Description = domain.PlanChangeDescription(plan.Name)
	}
	if req.Discount != nil {
		if invoice.Discount, err = parseDiscount(req.Discount); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if status == "" {
			return nil, apperrors.NewFieldValidationError("Invalid status", []apperrors.FieldError{{Field: "status", Message: "must not be empty"}})
		}
		invoice.Status = status
	}
	invoice.Recalculate()
	invoice.Touch(actor.AccountID, s.Now())

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, s.notFoundOr(ctx, err, "Invoice not found", "Failed to update invoice", slog.String("invoice_id", invoiceID))
	}

	s.LogInfo(ctx, "Invoice updated", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

func (s *billingService) GenerateInvoice(ctx context.Context, actor domain.Principal, req dto.GenerateInvoiceRequest) (*domain.Invoice, error) {
	if err := s.Authorize(ctx, actor, domain.OpManageInvoices); err != nil {
		return nil, err
	}

	items := req.ToDomainItems()
	if len(items) == 0 {
		return nil, apperrors.NewFieldValidationError("Invalid invoice", []apperrors.FieldError{{Field: "items", Message: "at least one item is required"}})
	}
	var fields []apperrors.FieldError
	for i, it := range items {
		items[i].Name = strings.TrimSpace(it.Name)
		if items[i].Name == "" {
			fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("items[%d].name", i), Message: "is required"})
		}
		switch {
		case !it.Amount.GreaterThan(decimal.Zero):
			fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("items[%d].amount", i), Message: "must be greater than 0"})
		case !domain.HasMoneyScale(it.Amount):
			fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("items[%d].amount", i), Message: "must have at most 2 decimal places"})
		}
	}
	if len(fields) > 0 {
		return nil, apperrors.NewFieldValidationError("Invalid invoice items", fields)
	}

	total := domain.ItemsTotal(items)
	if req.TotalAmount != nil && !req.TotalAmount.Equal(total) {
		return nil, apperrors.NewFieldValidationError("Total does not match items", []apperrors.FieldError{{
			Field:   "totalAmount",
			Message: fmt.Sprintf("must equal the sum of item amounts (%s)", total.String()),
		}})
	}
	discount, err := parseDiscount(req.Discount)
	if err != nil {
		return nil, err
	}

	account, err := s.loadAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	status := domain.InvoiceStatusPaid
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		status = strings.TrimSpace(*req.Status)
	}

	now := s.Now()
	invoice := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		AccountID:   account.AccountID,
		Amount:      total,
		Discount:    discount,
		PaymentDate: now,
		DueDate:     now,
		Status:      status,
		Description: domain.ItemsDescription(items),
		Items:       items,
		AuditFields: domain.NewAuditFields(actor.AccountID, now),
	}
	invoice.Recalculate()

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.metrics.InvoiceCreated("adhoc")
	s.LogInfo(ctx, "Invoice generated",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("account_id", account.AccountID))
	return &invoice, nil
}

func (s *billingService) GetInvoice(ctx context.Context, actor domain.Principal, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.loadInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.AccountID != actor.AccountID {
		if err := s.Authorize(ctx, actor, domain.OpViewInvoices); err != nil {
			return nil, err
		}
	}
	return invoice, nil
}

func (s *billingService) ListInvoicesByAccount(ctx context.Context, actor domain.Principal, accountID string) ([]domain.Invoice, error) {
	if !actor.IsSelf(accountID) {
		if err := s.Authorize(ctx, actor, domain.OpViewInvoices); err != nil {
			return nil, err
		}
	}
	if _, err := s.loadAccount(ctx, accountID); err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListInvoicesByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("account_id", accountID))
		return nil, err
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, nil
}

func (s *billingService) ListAllInvoices(ctx context.Context, actor domain.Principal, period domain.DateRange) ([]domain.Invoice, error) {
	if err := s.Authorize(ctx, actor, domain.OpViewAllInvoices); err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, err
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, nil
}
