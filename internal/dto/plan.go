package dto

import (
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePlanRequest defines the data needed to create a plan.
type CreatePlanRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	DurationMonths int             `json:"durationMonths" binding:"required,min=1,max=120"`
	Description    string          `json:"description" binding:"required,max=500"`
}

// UpdatePlanRequest defines the data allowed for updating a plan.
type UpdatePlanRequest struct {
	Name           *string          `json:"name" binding:"omitempty,max=100"`
	Price          *decimal.Decimal `json:"price"`
	DurationMonths *int             `json:"durationMonths" binding:"omitempty,min=1,max=120"`
	Description    *string          `json:"description" binding:"omitempty,max=500"`
}

// PlanResponse defines the data returned for a plan.
type PlanResponse struct {
	PlanID         string          `json:"planID"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	DurationMonths int             `json:"durationMonths"`
	Description    string          `json:"description"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToPlanResponse converts a domain.Plan to PlanResponse DTO
func ToPlanResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		PlanID:         p.PlanID,
		Name:           p.Name,
		Price:          p.Price,
		DurationMonths: p.DurationMonths,
		Description:    p.Description,
		CreatedAt:      p.CreatedAt,
		LastUpdatedAt:  p.LastUpdatedAt,
	}
}

// ToListPlanResponse converts plans to DTOs
func ToListPlanResponse(plans []domain.Plan) []PlanResponse {
	res := make([]PlanResponse, len(plans))
	for i := range plans {
		res[i] = ToPlanResponse(&plans[i])
	}
	return res
}
