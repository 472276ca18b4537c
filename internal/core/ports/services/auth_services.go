package services

import (
	"context"
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/SscSPs/gym_management_app/internal/dto"
)

// AuthSession is the result of a successful login.
type AuthSession struct {
	Token     string
	ExpiresAt time.Time
	Account   *domain.Account
}

// AuthSvcFacade covers registration, login and the password lifecycle.
type AuthSvcFacade interface {
	// Register creates a member account from the public sign-up form.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Account, error)

	// Login checks e-mail and password and issues a bearer token.
	Login(ctx context.Context, email, password string) (*AuthSession, error)

	// GoogleLogin verifies a Google ID token and logs in the account with its e-mail.
	GoogleLogin(ctx context.Context, idToken string) (*AuthSession, error)

	// Me returns the caller's own account.
	Me(ctx context.Context, actor domain.Principal) (*domain.Account, error)

	// ForgotPassword stores a reset token and e-mails the reset link.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password using a valid, unexpired reset token.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// ChangePassword replaces the caller's password after checking the old one.
	ChangePassword(ctx context.Context, actor domain.Principal, oldPassword, newPassword string) error
}

// Mailer sends outbound e-mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// IDTokenVerifier verifies a third-party identity token and returns the verified e-mail.
type IDTokenVerifier interface {
	VerifyEmail(ctx context.Context, idToken string) (string, error)
}
