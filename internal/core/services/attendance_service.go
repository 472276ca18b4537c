package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/google/uuid"
)

type attendanceService struct {
	BaseService
	accountRepo    portsrepo.AccountReader
	attendanceRepo portsrepo.AttendanceRepositoryFacade
	location       *time.Location
}

// NewAttendanceService creates the attendance recorder. Calendar days are taken in loc.
func NewAttendanceService(accountRepo portsrepo.AccountReader, attendanceRepo portsrepo.AttendanceRepositoryFacade, loc *time.Location, options ...ServiceOption) portssvc.AttendanceSvcFacade {
	if loc == nil {
		loc = time.UTC
	}
	return &attendanceService{
		BaseService:    newBaseService(options),
		accountRepo:    accountRepo,
		attendanceRepo: attendanceRepo,
		location:       loc,
	}
}

var _ portssvc.AttendanceSvcFacade = (*attendanceService)(nil)

// authorizeOther checks op against another account: role first, then existence, then the delegate rule.
func (s *attendanceService) authorizeOther(ctx context.Context, actor domain.Principal, op domain.Operation, accountID string) error {
	if err := s.Authorize(ctx, actor, op); err != nil {
		return err
	}
	target, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return s.notFoundOr(ctx, err, "Account not found", "Failed to load account", slog.String("account_id", accountID))
	}
	return s.AuthorizeOn(ctx, actor, op, *target)
}

func (s *attendanceService) MarkAttendance(ctx context.Context, actor domain.Principal, req dto.MarkAttendanceRequest) (*domain.Attendance, bool, error) {
	status, err := domain.ParseAttendanceStatus(req.Status)
	if err != nil {
		return nil, false, apperrors.NewFieldValidationError("Invalid status", []apperrors.FieldError{{Field: "status", Message: "must be PRESENT or ABSENT"}})
	}

	targetID := actor.AccountID
	if req.AccountID != nil && !actor.IsSelf(*req.AccountID) {
		targetID = *req.AccountID
		if err := s.authorizeOther(ctx, actor, domain.OpMarkAttendanceForOther, targetID); err != nil {
			return nil, false, err
		}
	}

	now := s.Now()
	record := domain.Attendance{
		AttendanceID:   uuid.NewString(),
		AccountID:      targetID,
		AttendanceDate: domain.CalendarDay(now, s.location),
		MarkedAt:       now,
		Status:         status,
		MarkedBy:       actor.AccountID,
		CreatedAt:      now,
	}

	stored, created, err := s.attendanceRepo.UpsertAttendance(ctx, record)
	if err != nil {
		return nil, false, s.notFoundOr(ctx, err, "Account not found", "Failed to mark attendance", slog.String("account_id", targetID))
	}

	s.metrics.AttendanceMarked(string(status), created)
	s.LogInfo(ctx, "Attendance marked",
		slog.String("account_id", targetID),
		slog.String("status", string(status)),
		slog.Bool("created", created))
	return stored, created, nil
}

func (s *attendanceService) ListAttendance(ctx context.Context, actor domain.Principal, accountID string, period domain.DateRange) ([]domain.Attendance, error) {
	if accountID == "" {
		accountID = actor.AccountID
	}
	if !actor.IsSelf(accountID) {
		if err := s.authorizeOther(ctx, actor, domain.OpViewAttendanceForOther, accountID); err != nil {
			return nil, err
		}
	}

	records, err := s.attendanceRepo.ListAttendance(ctx, accountID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to list attendance", slog.String("account_id", accountID))
		return nil, err
	}
	if records == nil {
		records = []domain.Attendance{}
	}
	return records, nil
}
