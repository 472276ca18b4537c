package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/gym_management_app/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// currentInvoiceJoin derives the current plan invoice (latest due date, then latest
// creation) and its plan for every account row.
const currentInvoiceJoin = `
LEFT JOIN LATERAL (
	SELECT i.invoice_id, i.plan_id, i.amount, i.discount, i.final_amount, i.payment_date, i.due_date,
		i.status, i.description, i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
	FROM invoices i
	WHERE i.account_id = a.account_id AND i.plan_id IS NOT NULL
	ORDER BY i.due_date DESC, i.created_at DESC
	LIMIT 1
) ci ON TRUE
LEFT JOIN plans cp ON cp.plan_id = ci.plan_id
`

const accountSelectColumns = `
	a.account_id, a.name, a.role, a.email, a.phone, a.dob, a.guardian_name, a.address, a.city,
	a.timing, a.blood_group, a.coach_id, a.joined_at, a.left_at, a.password_hash,
	a.reset_token_hash, a.reset_token_expires_at,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by, a.deleted_at,
	ci.invoice_id, ci.plan_id, ci.amount, ci.discount, ci.final_amount, ci.payment_date, ci.due_date,
	ci.status, ci.description, ci.created_at, ci.created_by, ci.last_updated_at, ci.last_updated_by,
	cp.name, cp.price, cp.duration_months, cp.description`

var accountSelectQuery = `SELECT` + accountSelectColumns + `
FROM accounts a` + currentInvoiceJoin

// scanAccount reads accountSelectColumns followed by any extra destinations.
func scanAccount(row scanner, extra ...any) (*domain.Account, error) {
	var m models.Account
	var ci models.CurrentInvoice
	dest := []any{
		&m.AccountID, &m.Name, &m.Role, &m.Email, &m.Phone, &m.DateOfBirth, &m.GuardianName, &m.Address, &m.City,
		&m.Timing, &m.BloodGroup, &m.CoachID, &m.JoinedAt, &m.LeftAt, &m.PasswordHash,
		&m.ResetTokenHash, &m.ResetTokenExpiresAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt,
		&ci.InvoiceID, &ci.PlanID, &ci.Amount, &ci.Discount, &ci.FinalAmount, &ci.PaymentDate, &ci.DueDate,
		&ci.Status, &ci.Description, &ci.CreatedAt, &ci.CreatedBy, &ci.LastUpdatedAt, &ci.LastUpdatedBy,
		&ci.PlanName, &ci.PlanPrice, &ci.PlanDurationMonths, &ci.PlanDescription,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	account := toDomainAccount(m)
	account.CurrentInvoice, account.CurrentPlan = toDomainCurrentInvoice(account.AccountID, ci)
	return &account, nil
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:           m.AccountID,
		Name:                m.Name,
		Role:                domain.Role(m.Role),
		Email:               m.Email,
		Phone:               m.Phone,
		DateOfBirth:         timePtr(m.DateOfBirth.Time, m.DateOfBirth.Valid),
		GuardianName:        m.GuardianName,
		Address:             m.Address,
		City:                m.City,
		Timing:              m.Timing,
		BloodGroup:          m.BloodGroup,
		CoachID:             m.CoachID.String,
		JoinedAt:            m.JoinedAt,
		LeftAt:              timePtr(m.LeftAt.Time, m.LeftAt.Valid),
		PasswordHash:        m.PasswordHash,
		ResetTokenHash:      m.ResetTokenHash.String,
		ResetTokenExpiresAt: timePtr(m.ResetTokenExpiresAt.Time, m.ResetTokenExpiresAt.Valid),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt: timePtr(m.DeletedAt.Time, m.DeletedAt.Valid),
	}
}

// Helper to convert domain.Account to models.Account for DB storage
func toModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:    d.AccountID,
		Name:         d.Name,
		Role:         string(d.Role),
		Email:        d.Email,
		Phone:        d.Phone,
		GuardianName: d.GuardianName,
		Address:      d.Address,
		City:         d.City,
		Timing:       d.Timing,
		BloodGroup:   d.BloodGroup,
		CoachID:      sql.NullString{String: d.CoachID, Valid: d.CoachID != ""},
		JoinedAt:     d.JoinedAt,
		PasswordHash: d.PasswordHash,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.DateOfBirth != nil {
		m.DateOfBirth = sql.NullTime{Time: *d.DateOfBirth, Valid: true}
	}
	if d.LeftAt != nil {
		m.LeftAt = sql.NullTime{Time: *d.LeftAt, Valid: true}
	}
	return m
}

func toDomainCurrentInvoice(accountID string, ci models.CurrentInvoice) (*domain.Invoice, *domain.Plan) {
	if !ci.InvoiceID.Valid {
		return nil, nil
	}
	invoice := &domain.Invoice{
		InvoiceID:   ci.InvoiceID.String,
		AccountID:   accountID,
		PlanID:      ci.PlanID.String,
		Amount:      ci.Amount.Decimal,
		Discount:    ci.Discount.Decimal,
		FinalAmount: ci.FinalAmount.Decimal,
		PaymentDate: ci.PaymentDate.Time,
		DueDate:     ci.DueDate.Time,
		Status:      ci.Status.String,
		Description: ci.Description.String,
		AuditFields: domain.AuditFields{
			CreatedAt:     ci.CreatedAt.Time,
			CreatedBy:     ci.CreatedBy.String,
			LastUpdatedAt: ci.LastUpdatedAt.Time,
			LastUpdatedBy: ci.LastUpdatedBy.String,
		},
	}
	if !ci.PlanName.Valid {
		return invoice, nil
	}
	plan := &domain.Plan{
		PlanID:         ci.PlanID.String,
		Name:           ci.PlanName.String,
		Price:          ci.PlanPrice.Decimal,
		DurationMonths: int(ci.PlanDurationMonths.Int32),
		Description:    ci.PlanDescription.String,
	}
	return invoice, plan
}

// getAccounts runs accountSelectQuery with the given filter and ordering.
func (r *PgxAccountRepository) getAccounts(ctx context.Context, where *whereBuilder, suffix string) ([]domain.Account, error) {
	query := accountSelectQuery + where.String() + suffix
	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) findOne(ctx context.Context, cond string, arg any) (*domain.Account, error) {
	where := &whereBuilder{}
	where.addRaw("a.deleted_at IS NULL")
	where.add(cond, arg)
	accounts, err := r.getAccounts(ctx, where, " LIMIT 1")
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &accounts[0], nil
}

// FindAccountByID retrieves a live account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, "a.account_id = ?", accountID)
}

// FindAccountByEmail retrieves a live account by e-mail, ignoring case.
func (r *PgxAccountRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, "lower(a.email) = lower(?)", email)
}

func (r *PgxAccountRepository) FindAccountByResetTokenHash(ctx context.Context, tokenHash string) (*domain.Account, error) {
	return r.findOne(ctx, "a.reset_token_hash = ?", tokenHash)
}

// ListAccounts retrieves live accounts matching the filter, ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	where := &whereBuilder{}
	where.addRaw("a.deleted_at IS NULL")
	if filter.Role != nil {
		where.add("a.role = ?", string(*filter.Role))
	}
	if filter.CoachID != "" {
		where.add("a.coach_id = ?", filter.CoachID)
	}
	if filter.Email != "" {
		where.add("lower(a.email) = lower(?)", filter.Email)
	}
	return r.getAccounts(ctx, where, " ORDER BY a.name, a.created_at")
}

func (r *PgxAccountRepository) CountAccountsByRole(ctx context.Context, role domain.Role) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE role = $1 AND deleted_at IS NULL`, string(role)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s accounts: %w", role, err)
	}
	return count, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)
	query := `
		INSERT INTO accounts (
			account_id, name, role, email, phone, dob, guardian_name, address, city, timing, blood_group,
			coach_id, joined_at, left_at, password_hash, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.Name, m.Role, m.Email, m.Phone, m.DateOfBirth, m.GuardianName, m.Address, m.City, m.Timing, m.BloodGroup,
		m.CoachID, m.JoinedAt, m.LeftAt, m.PasswordHash, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "account "+m.AccountID)
	}
	return nil
}

// UpdateAccount rewrites the profile, delegate and password hash of a live account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, email = $3, phone = $4, dob = $5, guardian_name = $6, address = $7, city = $8,
			timing = $9, blood_group = $10, coach_id = $11, left_at = $12, password_hash = $13,
			last_updated_at = $14, last_updated_by = $15
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.Name, m.Email, m.Phone, m.DateOfBirth, m.GuardianName, m.Address, m.City,
		m.Timing, m.BloodGroup, m.CoachID, m.LeftAt, m.PasswordHash,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "account "+m.AccountID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) UpdatePassword(ctx context.Context, accountID, passwordHash, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET password_hash = $2, reset_token_hash = NULL, reset_token_expires_at = NULL,
			last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, passwordHash, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update password for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) SetResetToken(ctx context.Context, accountID, tokenHash string, expiresAt time.Time) error {
	query := `
		UPDATE accounts
		SET reset_token_hash = $2, reset_token_expires_at = $3
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to store reset token for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkAccountDeleted soft deletes an account. Invoices and attendance keep referencing it.
func (r *PgxAccountRepository) MarkAccountDeleted(ctx context.Context, accountID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE accounts
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3, reset_token_hash = NULL
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
