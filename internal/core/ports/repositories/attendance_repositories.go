package repositories

import (
	"context"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
)

// AttendanceRepositoryFacade stores one attendance record per account per day
type AttendanceRepositoryFacade interface {
	// UpsertAttendance inserts the record for (account, day) or updates the existing one.
	// created reports whether a new row was inserted.
	UpsertAttendance(ctx context.Context, attendance domain.Attendance) (stored *domain.Attendance, created bool, err error)

	// ListAttendance returns the account's records within the range, by date ascending.
	ListAttendance(ctx context.Context, accountID string, period domain.DateRange) ([]domain.Attendance, error)
}
