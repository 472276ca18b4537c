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
	"github.com/SscSPs/gym_management_app/internal/platform/config"
	"github.com/SscSPs/gym_management_app/internal/utils"
	"github.com/google/uuid"
)

const invalidCredentialsMsg = "Invalid email or password"

// authService implements AuthSvcFacade. It issues JWTs with the account role and
// manages the password reset token lifecycle.
type authService struct {
	BaseService
	cfg         *config.Config
	accountRepo portsrepo.AccountRepositoryFacade
	mailer      portssvc.Mailer
	verifier    portssvc.IDTokenVerifier
}

// AuthServiceOption configures optional collaborators of the auth service
type AuthServiceOption func(*authService)

// WithMailer sets the mailer used for reset links
func WithMailer(m portssvc.Mailer) AuthServiceOption {
	return func(s *authService) {
		s.mailer = m
	}
}

// WithIDTokenVerifier enables Google sign-in
func WithIDTokenVerifier(v portssvc.IDTokenVerifier) AuthServiceOption {
	return func(s *authService) {
		s.verifier = v
	}
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, repo portsrepo.AccountRepositoryFacade, authOptions []AuthServiceOption, options ...ServiceOption) portssvc.AuthSvcFacade {
	svc := &authService{
		BaseService: newBaseService(options),
		cfg:         cfg,
		accountRepo: repo,
	}
	for _, option := range authOptions {
		option(svc)
	}
	return svc
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Account, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewFieldValidationError("Invalid password", []apperrors.FieldError{{Field: "password", Message: err.Error()}})
	}

	now := s.Now()
	id := uuid.NewString()
	account := domain.Account{
		AccountID:    id,
		Name:         strings.TrimSpace(req.Name),
		Role:         domain.RoleMember,
		Email:        normalizeEmail(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		JoinedAt:     now,
		PasswordHash: hash,
		AuditFields:  domain.NewAuditFields(id, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewDuplicateError(duplicateAccountMsg)
		}
		s.LogError(ctx, err, "Failed to register account")
		return nil, err
	}

	s.LogInfo(ctx, "Member registered", slog.String("account_id", id))
	return &account, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*portssvc.AuthSession, error) {
	account, err := s.accountRepo.FindAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.metrics.AuthAttempt("password", false)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError(invalidCredentialsMsg)
		}
		s.LogError(ctx, err, "Failed to load account for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		s.metrics.AuthAttempt("password", false)
		s.LogWarn(ctx, "Login failed: wrong password", slog.String("account_id", account.AccountID))
		return nil, apperrors.NewUnauthorizedError(invalidCredentialsMsg)
	}

	s.metrics.AuthAttempt("password", true)
	return s.issueSession(ctx, account)
}

func (s *authService) GoogleLogin(ctx context.Context, idToken string) (*portssvc.AuthSession, error) {
	if s.verifier == nil {
		return nil, apperrors.NewValidationError("Google sign-in is not configured")
	}
	email, err := s.verifier.VerifyEmail(ctx, idToken)
	if err != nil {
		s.metrics.AuthAttempt("google", false)
		s.LogWarn(ctx, "Google ID token rejected", slog.String("error", err.Error()))
		return nil, apperrors.NewUnauthorizedError("Invalid Google token")
	}

	account, err := s.accountRepo.FindAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.metrics.AuthAttempt("google", false)
		return nil, s.notFoundOr(ctx, err, "No account is registered with this Google e-mail", "Failed to load account for Google login")
	}

	s.metrics.AuthAttempt("google", true)
	return s.issueSession(ctx, account)
}

func (s *authService) issueSession(ctx context.Context, account *domain.Account) (*portssvc.AuthSession, error) {
	token, expiresAt, err := utils.GenerateJWT(account.AccountID, account.Role, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("account_id", account.AccountID))
		return nil, apperrors.NewInternalServerError("Failed to issue token", err)
	}
	s.LogInfo(ctx, "Account logged in", slog.String("account_id", account.AccountID))
	return &portssvc.AuthSession{Token: token, ExpiresAt: expiresAt, Account: account}, nil
}

func (s *authService) Me(ctx context.Context, actor domain.Principal) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, actor.AccountID)
	if err != nil {
		return nil, s.notFoundOr(ctx, err, "Account not found", "Failed to load own account")
	}
	return account, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.accountRepo.FindAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return s.notFoundOr(ctx, err, "No account found with this email", "Failed to load account for password reset")
	}

	rawToken, err := utils.GenerateSecureRandomString(utils.ResetTokenBytes)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate reset token")
		return apperrors.NewInternalServerError("Failed to create reset token", err)
	}
	expiresAt := s.Now().Add(s.cfg.PasswordResetTTL)

	if err := s.accountRepo.SetResetToken(ctx, account.AccountID, utils.HashResetToken(rawToken), expiresAt); err != nil {
		s.LogError(ctx, err, "Failed to store reset token", slog.String("account_id", account.AccountID))
		return err
	}

	if s.mailer == nil {
		s.LogWarn(ctx, "No mailer configured, reset link not sent", slog.String("account_id", account.AccountID))
		return nil
	}
	link := fmt.Sprintf("%s/reset/%s", s.cfg.FrontendBaseURL, rawToken)
	body := fmt.Sprintf("Hello %s,\n\nUse the link below to reset your password. It expires at %s.\n\n%s\n\nIf you did not ask for this, ignore this e-mail.\n",
		account.Name, expiresAt.Format("2006-01-02 15:04 MST"), link)
	if err := s.mailer.Send(ctx, account.Email, "Reset your password", body); err != nil {
		s.LogError(ctx, err, "Failed to send reset e-mail", slog.String("account_id", account.AccountID))
		return apperrors.NewInternalServerError("Failed to send reset e-mail", err)
	}

	s.LogInfo(ctx, "Password reset requested", slog.String("account_id", account.AccountID))
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash := utils.HashResetToken(token)
	account, err := s.accountRepo.FindAccountByResetTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("Password reset token is invalid or has expired")
		}
		s.LogError(ctx, err, "Failed to look up reset token")
		return err
	}
	if !account.ResetTokenValid(hash, s.Now()) {
		return apperrors.NewValidationError("Password reset token is invalid or has expired")
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperrors.NewFieldValidationError("Invalid password", []apperrors.FieldError{{Field: "password", Message: err.Error()}})
	}
	if err := s.accountRepo.UpdatePassword(ctx, account.AccountID, passwordHash, account.AccountID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to reset password", slog.String("account_id", account.AccountID))
		return err
	}

	s.LogInfo(ctx, "Password reset", slog.String("account_id", account.AccountID))
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, actor domain.Principal, oldPassword, newPassword string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, actor.AccountID)
	if err != nil {
		return s.notFoundOr(ctx, err, "Account not found", "Failed to load account for password change")
	}
	if !utils.CheckPasswordHash(oldPassword, account.PasswordHash) {
		return apperrors.NewUnauthorizedError("Old password is incorrect")
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperrors.NewFieldValidationError("Invalid password", []apperrors.FieldError{{Field: "newPassword", Message: err.Error()}})
	}
	if err := s.accountRepo.UpdatePassword(ctx, account.AccountID, passwordHash, actor.AccountID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to change password", slog.String("account_id", account.AccountID))
		return err
	}

	s.LogInfo(ctx, "Password changed", slog.String("account_id", account.AccountID))
	return nil
}
