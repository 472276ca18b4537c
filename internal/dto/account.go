package dto

import (
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name         string     `json:"name" binding:"required,min=2,max=100"`
	Email        string     `json:"email" binding:"required,email"`
	Phone        string     `json:"phone" binding:"required,phone"`
	Password     string     `json:"password" binding:"required,min=6"`
	Role         string     `json:"role" binding:"required,role"`
	CoachID      *string    `json:"coachID" binding:"omitempty,uuid"` // Optional delegate coach for members
	DateOfBirth  *time.Time `json:"dateOfBirth"`
	GuardianName string     `json:"guardianName" binding:"max=100"`
	Address      string     `json:"address" binding:"max=255"`
	City         string     `json:"city" binding:"max=100"`
	Timing       string     `json:"timing" binding:"max=50"`
	BloodGroup   string     `json:"bloodGroup" binding:"max=5"`
	JoinedAt     *time.Time `json:"joinedAt"` // Defaults to now
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name         *string    `json:"name" binding:"omitempty,min=2,max=100"`
	Email        *string    `json:"email" binding:"omitempty,email"`
	Phone        *string    `json:"phone" binding:"omitempty,phone"`
	Password     *string    `json:"password" binding:"omitempty,min=6"`
	CoachID      *string    `json:"coachID" binding:"omitempty,uuid"`
	DateOfBirth  *time.Time `json:"dateOfBirth"`
	GuardianName *string    `json:"guardianName" binding:"omitempty,max=100"`
	Address      *string    `json:"address" binding:"omitempty,max=255"`
	City         *string    `json:"city" binding:"omitempty,max=100"`
	Timing       *string    `json:"timing" binding:"omitempty,max=50"`
	BloodGroup   *string    `json:"bloodGroup" binding:"omitempty,max=5"`
	LeftAt       *time.Time `json:"leftAt"`
}

// AssignCoachRequest names the coach to delegate a member to.
type AssignCoachRequest struct {
	CoachID string `json:"coachID" binding:"required,uuid"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Role string `form:"role" binding:"required,role"`
}

// SearchAccountsParams defines query parameters for member search.
type SearchAccountsParams struct {
	Email string `form:"email"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string           `json:"accountID"`
	Name           string           `json:"name"`
	Role           domain.Role      `json:"role"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	DateOfBirth    *time.Time       `json:"dateOfBirth,omitempty"`
	GuardianName   string           `json:"guardianName,omitempty"`
	Address        string           `json:"address,omitempty"`
	City           string           `json:"city,omitempty"`
	Timing         string           `json:"timing,omitempty"`
	BloodGroup     string           `json:"bloodGroup,omitempty"`
	CoachID        string           `json:"coachID,omitempty"`
	JoinedAt       time.Time        `json:"joinedAt"`
	LeftAt         *time.Time       `json:"leftAt,omitempty"`
	CurrentPlan    *PlanResponse    `json:"currentPlan,omitempty"`
	CurrentInvoice *InvoiceResponse `json:"currentInvoice,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	CreatedBy      string           `json:"createdBy"`
	LastUpdatedAt  time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy  string           `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	res := AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		Role:          acc.Role,
		Email:         acc.Email,
		Phone:         acc.Phone,
		DateOfBirth:   acc.DateOfBirth,
		GuardianName:  acc.GuardianName,
		Address:       acc.Address,
		City:          acc.City,
		Timing:        acc.Timing,
		BloodGroup:    acc.BloodGroup,
		CoachID:       acc.CoachID,
		JoinedAt:      acc.JoinedAt,
		LeftAt:        acc.LeftAt,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
	if acc.CurrentPlan != nil {
		p := ToPlanResponse(acc.CurrentPlan)
		res.CurrentPlan = &p
	}
	if acc.CurrentInvoice != nil {
		inv := ToInvoiceResponse(acc.CurrentInvoice)
		res.CurrentInvoice = &inv
	}
	return res
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
