package services

import (
	"context"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/SscSPs/gym_management_app/internal/dto"
)

// PlanSvcFacade manages the plan catalogue.
type PlanSvcFacade interface {
	CreatePlan(ctx context.Context, actor domain.Principal, req dto.CreatePlanRequest) (*domain.Plan, error)
	GetPlan(ctx context.Context, planID string) (*domain.Plan, error)
	ListPlans(ctx context.Context) ([]domain.Plan, error)
	UpdatePlan(ctx context.Context, actor domain.Principal, planID string, req dto.UpdatePlanRequest) (*domain.Plan, error)
	RemovePlan(ctx context.Context, actor domain.Principal, planID string) error
}
