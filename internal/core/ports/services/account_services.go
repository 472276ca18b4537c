package services

import (
	"context"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/SscSPs/gym_management_app/internal/dto"
)

// AccountReaderSvc defines read operations for accounts
type AccountReaderSvc interface {
	// GetAccount returns an account the actor may see, with its current plan and invoice.
	GetAccount(ctx context.Context, actor domain.Principal, accountID string) (*domain.Account, error)

	// ListAccountsByRole lists accounts of a role. Coaches only see members they coach.
	ListAccountsByRole(ctx context.Context, actor domain.Principal, role domain.Role) ([]domain.Account, error)

	// SearchMembersByEmail finds members by exact e-mail, ignoring case. An empty e-mail lists all members.
	SearchMembersByEmail(ctx context.Context, actor domain.Principal, email string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for accounts
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, actor domain.Principal, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, actor domain.Principal, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// AssignCoach makes coachID the delegate of the member.
	AssignCoach(ctx context.Context, actor domain.Principal, memberID, coachID string) (*domain.Account, error)
}

// AccountLifecycleSvc defines operations for managing account lifecycle
type AccountLifecycleSvc interface {
	// RemoveAccount soft deletes an account.
	RemoveAccount(ctx context.Context, actor domain.Principal, accountID string) error

	// EnsureOwner creates the bootstrap owner when no owner exists yet.
	// created is false when an owner was already present.
	EnsureOwner(ctx context.Context, owner OwnerSeed) (account *domain.Account, created bool, err error)
}

// OwnerSeed describes the owner created on first start.
type OwnerSeed struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountLifecycleSvc
}
