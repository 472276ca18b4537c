package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
)

// PlanReader defines read operations for plans
type PlanReader interface {
	FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error)
	ListPlans(ctx context.Context) ([]domain.Plan, error)
}

// PlanWriter defines write operations for plans
type PlanWriter interface {
	// SavePlan persists a new plan. A duplicate name yields apperrors.ErrDuplicate.
	SavePlan(ctx context.Context, plan domain.Plan) error
	UpdatePlan(ctx context.Context, plan domain.Plan) error
	MarkPlanDeleted(ctx context.Context, planID string, deletedAt time.Time, deletedBy string) error
}

// PlanRepositoryFacade combines all plan-related repository interfaces
type PlanRepositoryFacade interface {
	PlanReader
	PlanWriter
}
