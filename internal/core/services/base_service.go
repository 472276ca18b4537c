package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/SscSPs/gym_management_app/internal/middleware"
	"github.com/SscSPs/gym_management_app/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock   func() time.Time
	metrics *metrics.Metrics
}

// ServiceOption is a functional option shared by all services
type ServiceOption func(*BaseService)

// WithClock overrides the time source
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

// WithMetrics attaches prometheus collectors
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.metrics = m
	}
}

func newBaseService(options []ServiceOption) BaseService {
	b := BaseService{clock: time.Now}
	for _, option := range options {
		option(&b)
	}
	return b
}

// Now returns the current time from the configured clock
func (s *BaseService) Now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Authorize checks the access matrix for op without a target account.
func (s *BaseService) Authorize(ctx context.Context, actor domain.Principal, op domain.Operation) error {
	if actor.Can(op) {
		return nil
	}
	s.LogWarn(ctx, "Operation denied",
		slog.String("operation", string(op)),
		slog.String("actor_role", string(actor.Role)))
	return apperrors.NewForbiddenError("You are not allowed to perform this action")
}

// AuthorizeOn checks the access matrix for op against target, including the coach delegate rule.
func (s *BaseService) AuthorizeOn(ctx context.Context, actor domain.Principal, op domain.Operation, target domain.Account) error {
	if actor.CanActOn(op, target) {
		return nil
	}
	s.LogWarn(ctx, "Operation denied on account",
		slog.String("operation", string(op)),
		slog.String("actor_role", string(actor.Role)),
		slog.String("target_account_id", target.AccountID),
		slog.String("target_role", string(target.Role)))
	return apperrors.NewForbiddenError("You are not allowed to perform this action on this account")
}

// notFoundOr converts a repository ErrNotFound into a user-facing 404 and logs anything else.
func (s *BaseService) notFoundOr(ctx context.Context, err error, notFoundMsg, logMsg string, keyvals ...any) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError(notFoundMsg)
	}
	s.LogError(ctx, err, logMsg, keyvals...)
	return err
}
