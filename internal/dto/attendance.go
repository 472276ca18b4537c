package dto

import (
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
)

// MarkAttendanceRequest marks today's attendance for the caller or another account.
type MarkAttendanceRequest struct {
	AccountID *string `json:"accountID" binding:"omitempty,uuid"` // Defaults to the caller
	Status    string  `json:"status" binding:"required,oneof=PRESENT ABSENT Present Absent present absent"`
}

// AttendanceResponse defines the data returned for an attendance record.
type AttendanceResponse struct {
	AttendanceID   string                  `json:"attendanceID"`
	AccountID      string                  `json:"accountID"`
	AttendanceDate string                  `json:"attendanceDate"` // YYYY-MM-DD
	Status         domain.AttendanceStatus `json:"status"`
	MarkedAt       time.Time               `json:"markedAt"`
	MarkedBy       string                  `json:"markedBy"`
}

// ToAttendanceResponse converts a domain.Attendance to AttendanceResponse DTO
func ToAttendanceResponse(a *domain.Attendance) AttendanceResponse {
	return AttendanceResponse{
		AttendanceID:   a.AttendanceID,
		AccountID:      a.AccountID,
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		Status:         a.Status,
		MarkedAt:       a.MarkedAt,
		MarkedBy:       a.MarkedBy,
	}
}

// ToListAttendanceResponse converts records to DTOs
func ToListAttendanceResponse(records []domain.Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(records))
	for i := range records {
		res[i] = ToAttendanceResponse(&records[i])
	}
	return res
}
