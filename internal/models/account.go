package models

import (
	"database/sql"
	"time"
)

// Account is the accounts row. Optional profile columns are NOT NULL DEFAULT ''.
type Account struct {
	AccountID           string         `db:"account_id"`
	Name                string         `db:"name"`
	Role                string         `db:"role"`
	Email               string         `db:"email"`
	Phone               string         `db:"phone"`
	DateOfBirth         sql.NullTime   `db:"dob"`
	GuardianName        string         `db:"guardian_name"`
	Address             string         `db:"address"`
	City                string         `db:"city"`
	Timing              string         `db:"timing"`
	BloodGroup          string         `db:"blood_group"`
	CoachID             sql.NullString `db:"coach_id"`
	JoinedAt            time.Time      `db:"joined_at"`
	LeftAt              sql.NullTime   `db:"left_at"`
	PasswordHash        string         `db:"password_hash"`
	ResetTokenHash      sql.NullString `db:"reset_token_hash"`
	ResetTokenExpiresAt sql.NullTime   `db:"reset_token_expires_at"`
	AuditFields
	DeletedAt sql.NullTime `db:"deleted_at"`
}
