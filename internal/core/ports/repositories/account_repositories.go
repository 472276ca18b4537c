package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
// Accounts are returned with their current invoice and plan derived from the ledger.
type AccountReader interface {
	// FindAccountByID retrieves a live (not removed) account by its ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByEmail retrieves a live account by e-mail, case-insensitively.
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)

	// FindAccountByResetTokenHash retrieves the account holding the given reset token hash.
	FindAccountByResetTokenHash(ctx context.Context, tokenHash string) (*domain.Account, error)

	// ListAccounts retrieves live accounts matching the filter, ordered by name.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)

	// CountAccountsByRole counts live accounts with the given role.
	CountAccountsByRole(ctx context.Context, role domain.Role) (int, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Duplicate e-mail or phone yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's profile fields and delegate.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// UpdatePassword replaces the password hash and clears any reset token.
	UpdatePassword(ctx context.Context, accountID, passwordHash, updatedBy string, now time.Time) error

	// SetResetToken stores a password reset token hash with its expiry.
	SetResetToken(ctx context.Context, accountID, tokenHash string, expiresAt time.Time) error
}

// AccountLifecycleManager defines operations for managing account lifecycle
type AccountLifecycleManager interface {
	// MarkAccountDeleted soft deletes an account, keeping its invoices and attendance.
	MarkAccountDeleted(ctx context.Context, accountID string, deletedAt time.Time, deletedBy string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLifecycleManager
}
