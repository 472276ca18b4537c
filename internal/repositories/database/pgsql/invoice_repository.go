package pgsql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/gym_management_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceSelectQuery = `
	SELECT invoice_id, account_id, plan_id, amount, discount, final_amount, payment_date, due_date,
		status, description, items, created_at, created_by, last_updated_at, last_updated_by
	FROM invoices`

const insertInvoiceQuery = `
	INSERT INTO invoices (invoice_id, account_id, plan_id, amount, discount, final_amount, payment_date, due_date,
		status, description, items, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

func scanInvoice(row scanner) (*domain.Invoice, error) {
	var m models.Invoice
	var rawItems []byte
	err := row.Scan(
		&m.InvoiceID, &m.AccountID, &m.PlanID, &m.Amount, &m.Discount, &m.FinalAmount, &m.PaymentDate, &m.DueDate,
		&m.Status, &m.Description, &rawItems, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if len(rawItems) > 0 {
		if err := json.Unmarshal(rawItems, &m.Items); err != nil {
			return nil, fmt.Errorf("failed to decode items of invoice %s: %w", m.InvoiceID, err)
		}
	}
	invoice := toDomainInvoice(m)
	return &invoice, nil
}

func toDomainInvoice(m models.Invoice) domain.Invoice {
	var items []domain.InvoiceItem
	for _, it := range m.Items {
		items = append(items, domain.InvoiceItem{Name: it.Name, Amount: it.Amount})
	}
	return domain.Invoice{
		InvoiceID:   m.InvoiceID,
		AccountID:   m.AccountID,
		PlanID:      m.PlanID.String,
		Amount:      m.Amount,
		Discount:    m.Discount,
		FinalAmount: m.FinalAmount,
		PaymentDate: m.PaymentDate,
		DueDate:     m.DueDate,
		Status:      m.Status,
		Description: m.Description,
		Items:       items,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toModelInvoice(d domain.Invoice) models.Invoice {
	m := models.Invoice{
		InvoiceID:   d.InvoiceID,
		AccountID:   d.AccountID,
		PlanID:      sql.NullString{String: d.PlanID, Valid: d.PlanID != ""},
		Amount:      d.Amount,
		Discount:    d.Discount,
		FinalAmount: d.FinalAmount,
		PaymentDate: d.PaymentDate,
		DueDate:     d.DueDate,
		Status:      d.Status,
		Description: d.Description,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	for _, it := range d.Items {
		m.Items = append(m.Items, models.InvoiceItem{Name: it.Name, Amount: it.Amount})
	}
	return m
}

func insertInvoice(ctx context.Context, q querier, invoice domain.Invoice) error {
	m := toModelInvoice(invoice)
	items := m.Items
	if items == nil {
		items = []models.InvoiceItem{}
	}
	rawItems, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode items of invoice %s: %w", m.InvoiceID, err)
	}
	_, err = q.Exec(ctx, insertInvoiceQuery,
		m.InvoiceID, m.AccountID, m.PlanID, m.Amount, m.Discount, m.FinalAmount, m.PaymentDate, m.DueDate,
		m.Status, m.Description, rawItems, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "invoice "+m.InvoiceID)
	}
	return nil
}

func (r *PgxInvoiceRepository) listInvoices(ctx context.Context, where *whereBuilder) ([]domain.Invoice, error) {
	query := invoiceSelectQuery + where.String() + ` ORDER BY payment_date DESC, created_at DESC`
	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := scanInvoice(r.Pool.QueryRow(ctx, invoiceSelectQuery+` WHERE invoice_id = $1`, invoiceID))
	if err != nil {
		return nil, mapReadError(err, "invoice "+invoiceID)
	}
	return invoice, nil
}

func (r *PgxInvoiceRepository) ListInvoicesByAccount(ctx context.Context, accountID string) ([]domain.Invoice, error) {
	where := &whereBuilder{}
	where.add("account_id = ?", accountID)
	return r.listInvoices(ctx, where)
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, period domain.DateRange) ([]domain.Invoice, error) {
	where := &whereBuilder{}
	where.addPeriod("payment_date", period)
	return r.listInvoices(ctx, where)
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	return insertInvoice(ctx, r.Pool, invoice)
}

// SavePlanInvoice locks the account row so two assignments for the same member
// serialize, then appends the invoice only if the current plan invoice is unchanged.
func (r *PgxInvoiceRepository) SavePlanInvoice(ctx context.Context, invoice domain.Invoice, expectedCurrentID string) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	var locked string
	err = tx.QueryRow(ctx,
		`SELECT account_id FROM accounts WHERE account_id = $1 AND deleted_at IS NULL FOR UPDATE`,
		invoice.AccountID,
	).Scan(&locked)
	if err != nil {
		return mapReadError(err, "account "+invoice.AccountID)
	}

	var currentID string
	err = tx.QueryRow(ctx, `
		SELECT invoice_id FROM invoices
		WHERE account_id = $1 AND plan_id IS NOT NULL
		ORDER BY due_date DESC, created_at DESC
		LIMIT 1`,
		invoice.AccountID,
	).Scan(&currentID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to read current invoice of account %s: %w", invoice.AccountID, err)
	}
	if currentID != expectedCurrentID {
		err = fmt.Errorf("%w: current invoice of account %s changed", apperrors.ErrConflict, invoice.AccountID)
		return err
	}

	if err = insertInvoice(ctx, tx, invoice); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := toModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET plan_id = $2, amount = $3, discount = $4, final_amount = $5, status = $6, description = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.InvoiceID, m.PlanID, m.Amount, m.Discount, m.FinalAmount, m.Status, m.Description,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "invoice "+m.InvoiceID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
