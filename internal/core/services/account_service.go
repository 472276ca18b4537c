package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/SscSPs/gym_management_app/internal/utils"
	"github.com/google/uuid"
)

const duplicateAccountMsg = "An account with this email or phone already exists"

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(options),
		accountRepo: repo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *accountService) CreateAccount(ctx context.Context, actor domain.Principal, req dto.CreateAccountRequest) (*domain.Account, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, apperrors.NewFieldValidationError("Invalid role", []apperrors.FieldError{{Field: "role", Message: err.Error()}})
	}
	if !domain.Allowed(actor.Role, domain.OpCreateAccount, &role) {
		s.LogWarn(ctx, "Account creation denied",
			slog.String("actor_role", string(actor.Role)),
			slog.String("target_role", string(role)))
		return nil, apperrors.NewForbiddenError("You are not allowed to create an account with this role")
	}

	coachID, err := s.resolveCoachForNewAccount(ctx, actor, role, req.CoachID)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewFieldValidationError("Invalid password", []apperrors.FieldError{{Field: "password", Message: err.Error()}})
	}

	now := s.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		Email:        normalizeEmail(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		DateOfBirth:  req.DateOfBirth,
		GuardianName: req.GuardianName,
		Address:      req.Address,
		City:         req.City,
		Timing:       req.Timing,
		BloodGroup:   req.BloodGroup,
		CoachID:      coachID,
		JoinedAt:     now,
		PasswordHash: hash,
		AuditFields:  domain.NewAuditFields(actor.AccountID, now),
	}
	if req.JoinedAt != nil {
		account.JoinedAt = *req.JoinedAt
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewDuplicateError(duplicateAccountMsg)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("role", string(account.Role)))
	return &account, nil
}

// resolveCoachForNewAccount validates a requested delegate, or defaults a coach's new member to themselves.
func (s *accountService) resolveCoachForNewAccount(ctx context.Context, actor domain.Principal, role domain.Role, requested *string) (string, error) {
	if requested == nil || *requested == "" {
		if actor.Role == domain.RoleCoach && role == domain.RoleMember {
			return actor.AccountID, nil
		}
		return "", nil
	}
	if role != domain.RoleMember {
		return "", apperrors.NewFieldValidationError("Only members can have a coach", []apperrors.FieldError{{Field: "coachID", Message: "must be empty for non-member accounts"}})
	}
	if actor.Role == domain.RoleCoach && *requested != actor.AccountID {
		return "", apperrors.NewForbiddenError("Coaches can only add members to themselves")
	}
	if _, err := s.loadCoach(ctx, *requested); err != nil {
		return "", err
	}
	return *requested, nil
}

func (s *accountService) loadCoach(ctx context.Context, coachID string) (*domain.Account, error) {
	coach, err := s.accountRepo.FindAccountByID(ctx, coachID)
	if err != nil {
		return nil, s.notFoundOr(ctx, err, "Coach not found", "Failed to load coach", slog.String("coach_id", coachID))
	}
	if coach.Role != domain.RoleCoach {
		return nil, apperrors.NewNotFoundError("Coach not found")
	}
	return coach, nil
}

func (s *accountService) loadAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, s.notFoundOr(ctx, err, "Account not found", "Failed to load account", slog.String("account_id", accountID))
	}
	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, actor domain.Principal, accountID string) (*domain.Account, error) {
	if !actor.IsSelf(accountID) {
		if err := s.Authorize(ctx, actor, domain.OpUpdateAccount); err != nil {
			return nil, err
		}
	}
	account, err := s.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !actor.IsSelf(accountID) {
		if err := s.AuthorizeOn(ctx, actor, domain.OpUpdateAccount, *account); err != nil {
			return nil, err
		}
	}
	return account, nil
}

func (s *accountService) ListAccountsByRole(ctx context.Context, actor domain.Principal, role domain.Role) ([]domain.Account, error) {
	if !domain.Allowed(actor.Role, domain.OpListAccountsByRole, &role) {
		s.LogWarn(ctx, "Account listing denied",
			slog.String("actor_role", string(actor.Role)),
			slog.String("target_role", string(role)))
		return nil, apperrors.NewForbiddenError("You are not allowed to list accounts with this role")
	}

	filter := domain.AccountFilter{Role: &role}
	if actor.Role == domain.RoleCoach {
		filter.CoachID = actor.AccountID
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("role", string(role)))
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (s *accountService) SearchMembersByEmail(ctx context.Context, actor domain.Principal, email string) ([]domain.Account, error) {
	if err := s.Authorize(ctx, actor, domain.OpSearchAccounts); err != nil {
		return nil, err
	}
	member := domain.RoleMember
	accounts, err := s.accountRepo.ListAccounts(ctx, domain.AccountFilter{Role: &member, Email: normalizeEmail(email)})
	if err != nil {
		s.LogError(ctx, err, "Failed to search members")
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, actor domain.Principal, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	self := actor.IsSelf(accountID)
	if !self {
		if err := s.Authorize(ctx, actor, domain.OpUpdateAccount); err != nil {
			return nil, err
		}
	}

	account, err := s.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !self {
		if err := s.AuthorizeOn(ctx, actor, domain.OpUpdateAccount, *account); err != nil {
			return nil, err
		}
	}

	if req.CoachID != nil && *req.CoachID != account.CoachID {
		if self && !actor.Can(domain.OpAssignCoach) {
			return nil, apperrors.NewForbiddenError("You cannot change your own coach")
		}
		if *req.CoachID != "" {
			if account.Role != domain.RoleMember {
				return nil, apperrors.NewFieldValidationError("Only members can have a coach", []apperrors.FieldError{{Field: "coachID", Message: "account is not a member"}})
			}
			if actor.Role == domain.RoleCoach && *req.CoachID != actor.AccountID {
				return nil, apperrors.NewForbiddenError("Coaches cannot hand members to another coach")
			}
			if _, err := s.loadCoach(ctx, *req.CoachID); err != nil {
				return nil, err
			}
		}
		account.CoachID = *req.CoachID
	}

	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		account.Email = normalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		account.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.DateOfBirth != nil {
		account.DateOfBirth = req.DateOfBirth
	}
	if req.GuardianName != nil {
		account.GuardianName = *req.GuardianName
	}
	if req.Address != nil {
		account.Address = *req.Address
	}
	if req.City != nil {
		account.City = *req.City
	}
	if req.Timing != nil {
		account.Timing = *req.Timing
	}
	if req.BloodGroup != nil {
		account.BloodGroup = *req.BloodGroup
	}
	if req.LeftAt != nil {
		account.LeftAt = req.LeftAt
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.NewFieldValidationError("Invalid password", []apperrors.FieldError{{Field: "password", Message: err.Error()}})
		}
		account.PasswordHash = hash
	}

	account.Touch(actor.AccountID, s.Now())

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewDuplicateError(duplicateAccountMsg)
		}
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) AssignCoach(ctx context.Context, actor domain.Principal, memberID, coachID string) (*domain.Account, error) {
	if err := s.Authorize(ctx, actor, domain.OpAssignCoach); err != nil {
		return nil, err
	}
	member, err := s.loadAccount(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.Role != domain.RoleMember {
		return nil, apperrors.NewValidationError("Coaches can only be assigned to members")
	}
	if _, err := s.loadCoach(ctx, coachID); err != nil {
		return nil, err
	}

	member.CoachID = coachID
	member.Touch(actor.AccountID, s.Now())
	if err := s.accountRepo.UpdateAccount(ctx, *member); err != nil {
		s.LogError(ctx, err, "Failed to assign coach",
			slog.String("member_id", memberID),
			slog.String("coach_id", coachID))
		return nil, err
	}

	s.LogInfo(ctx, "Coach assigned", slog.String("member_id", memberID), slog.String("coach_id", coachID))
	return member, nil
}

func (s *accountService) RemoveAccount(ctx context.Context, actor domain.Principal, accountID string) error {
	if actor.IsSelf(accountID) {
		return apperrors.NewValidationError("You cannot remove your own account")
	}
	if err := s.Authorize(ctx, actor, domain.OpRemoveAccount); err != nil {
		return err
	}
	account, err := s.loadAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeOn(ctx, actor, domain.OpRemoveAccount, *account); err != nil {
		return err
	}

	if err := s.accountRepo.MarkAccountDeleted(ctx, accountID, s.Now(), actor.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Account not found")
		}
		s.LogError(ctx, err, "Failed to remove account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account removed", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) EnsureOwner(ctx context.Context, owner portssvc.OwnerSeed) (*domain.Account, bool, error) {
	count, err := s.accountRepo.CountAccountsByRole(ctx, domain.RoleOwner)
	if err != nil {
		s.LogError(ctx, err, "Failed to count owners")
		return nil, false, err
	}
	if count > 0 {
		return nil, false, nil
	}

	hash, err := utils.HashPassword(owner.Password)
	if err != nil {
		return nil, false, apperrors.NewValidationError("Bootstrap owner password is too short")
	}

	now := s.Now()
	id := uuid.NewString()
	account := domain.Account{
		AccountID:    id,
		Name:         strings.TrimSpace(owner.Name),
		Role:         domain.RoleOwner,
		Email:        normalizeEmail(owner.Email),
		Phone:        strings.TrimSpace(owner.Phone),
		JoinedAt:     now,
		PasswordHash: hash,
		AuditFields:  domain.NewAuditFields(id, now),
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to create bootstrap owner")
		return nil, false, err
	}

	s.LogInfo(ctx, "Bootstrap owner created", slog.String("account_id", id))
	return &account, true, nil
}
