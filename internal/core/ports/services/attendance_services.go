package services

import (
	"context"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/SscSPs/gym_management_app/internal/dto"
)

// AttendanceSvcFacade records and lists daily attendance.
type AttendanceSvcFacade interface {
	// MarkAttendance records today's attendance for the caller or, when permitted, another account.
	// created is false when the day was already marked and the record was updated in place.
	MarkAttendance(ctx context.Context, actor domain.Principal, req dto.MarkAttendanceRequest) (record *domain.Attendance, created bool, err error)

	// ListAttendance returns an account's records by date ascending.
	ListAttendance(ctx context.Context, actor domain.Principal, accountID string, period domain.DateRange) ([]domain.Attendance, error)
}
