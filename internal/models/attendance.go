package models

import "time"

// Attendance is the attendance row, unique per (account_id, attendance_date).
type Attendance struct {
	AttendanceID   string    `db:"attendance_id"`
	AccountID      string    `db:"account_id"`
	AttendanceDate time.Time `db:"attendance_date"`
	MarkedAt       time.Time `db:"marked_at"`
	Status         string    `db:"status"`
	MarkedBy       string    `db:"marked_by"`
	CreatedAt      time.Time `db:"created_at"`
}
