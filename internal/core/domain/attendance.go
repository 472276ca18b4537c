package domain

import (
	"fmt"
	"strings"
	"time"
)

// AttendanceStatus is the outcome of a marking.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

// ParseAttendanceStatus accepts Present/Absent in any case.
func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch st := AttendanceStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case AttendancePresent, AttendanceAbsent:
		return st, nil
	default:
		return "", fmt.Errorf("unknown attendance status %q", s)
	}
}

// Attendance is the single record of an account for one calendar day.
type Attendance struct {
	AttendanceID   string           `json:"attendanceID"`
	AccountID      string           `json:"accountID"`
	AttendanceDate time.Time        `json:"attendanceDate"` // calendar day, midnight in the gym's zone
	MarkedAt       time.Time        `json:"markedAt"`
	Status         AttendanceStatus `json:"status"`
	MarkedBy       string           `json:"markedBy"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// CalendarDay truncates t to midnight in loc.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}
