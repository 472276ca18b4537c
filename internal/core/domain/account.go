package domain

import "time"

// Account is a person known to the gym: owner, manager, coach or member.
type Account struct {
	AccountID    string     `json:"accountID"`
	Name         string     `json:"name"`
	Role         Role       `json:"role"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	GuardianName string     `json:"guardianName,omitempty"`
	Address      string     `json:"address,omitempty"`
	City         string     `json:"city,omitempty"`
	Timing       string     `json:"timing,omitempty"`
	BloodGroup   string     `json:"bloodGroup,omitempty"`
	CoachID      string     `json:"coachID,omitempty"` // delegate coach, members only
	JoinedAt     time.Time  `json:"joinedAt"`
	LeftAt       *time.Time `json:"leftAt,omitempty"`

	PasswordHash        string     `json:"-"`
	ResetTokenHash      string     `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// Derived from the invoice ledger on read, never stored on the account.
	CurrentInvoice *Invoice `json:"currentInvoice,omitempty"`
	CurrentPlan    *Plan    `json:"currentPlan,omitempty"`
}

// IsCoachedBy reports whether coachID is this member's delegate.
func (a Account) IsCoachedBy(coachID string) bool {
	return a.CoachID != "" && a.CoachID == coachID
}

// ResetTokenValid reports whether hash matches the stored reset token and it has not expired.
func (a Account) ResetTokenValid(hash string, now time.Time) bool {
	if a.ResetTokenHash == "" || a.ResetTokenHash != hash || a.ResetTokenExpiresAt == nil {
		return false
	}
	return now.Before(*a.ResetTokenExpiresAt)
}

// AccountFilter narrows account listings.
type AccountFilter struct {
	Role    *Role
	CoachID string
	Email   string // case-insensitive exact match when set
}
