package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const duplicatePlanMsg = "A plan with this name already exists"

type planService struct {
	BaseService
	planRepo portsrepo.PlanRepositoryFacade
}

// NewPlanService creates the plan catalogue service
func NewPlanService(repo portsrepo.PlanRepositoryFacade, options ...ServiceOption) portssvc.PlanSvcFacade {
	return &planService{
		BaseService: newBaseService(options),
		planRepo:    repo,
	}
}

var _ portssvc.PlanSvcFacade = (*planService)(nil)

func validatePlan(p domain.Plan) error {
	var fields []apperrors.FieldError
	if p.Name == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: "is required"})
	}
	if !p.Price.GreaterThan(decimal.Zero) {
		fields = append(fields, apperrors.FieldError{Field: "price", Message: "must be greater than 0"})
	} else if !domain.HasMoneyScale(p.Price) {
		fields = append(fields, apperrors.FieldError{Field: "price", Message: "must have at most 2 decimal places"})
	}
	if p.DurationMonths < 1 {
		fields = append(fields, apperrors.FieldError{Field: "durationMonths", Message: "must be at least 1"})
	}
	if p.Description == "" {
		fields = append(fields, apperrors.FieldError{Field: "description", Message: "is required"})
	}
	if len(fields) > 0 {
		return apperrors.NewFieldValidationError("Invalid plan", fields)
	}
	return nil
}

func (s *planService) CreatePlan(ctx context.Context, actor domain.Principal, req dto.CreatePlanRequest) (*domain.Plan, error) {
	if err := s.Authorize(ctx, actor, domain.OpManagePlans); err != nil {
		return nil, err
	}

	now := s.Now()
	plan := domain.Plan{
		PlanID:         uuid.NewString(),
		Name:           strings.TrimSpace(req.Name),
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
		Description:    strings.TrimSpace(req.Description),
		AuditFields:    domain.NewAuditFields(actor.AccountID, now),
	}
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	if err := s.planRepo.SavePlan(ctx, plan); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewDuplicateError(duplicatePlanMsg)
		}
		s.LogError(ctx, err, "Failed to save plan", slog.String("plan_name", plan.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Plan created", slog.String("plan_id", plan.PlanID), slog.String("plan_name", plan.Name))
	return &plan, nil
}

func (s *planService) GetPlan(ctx context.Context, planID string) (*domain.Plan, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, s.notFoundOr(ctx, err, "Plan not found", "Failed to load plan", slog.String("plan_id", planID))
	}
	return plan, nil
}

func (s *planService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	plans, err := s.planRepo.ListPlans(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list plans")
		return nil, err
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	return plans, nil
}

func (s *planService) UpdatePlan(ctx context.Context, actor domain.Principal, planID string, req dto.UpdatePlanRequest) (*domain.Plan, error) {
	if err := s.Authorize(ctx, actor, domain.OpManagePlans); err != nil {
		return nil, err
	}
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		plan.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.DurationMonths != nil {
		plan.DurationMonths = *req.DurationMonths
	}
	if req.Description != nil {
		plan.Description = strings.TrimSpace(*req.Description)
	}
	if err := validatePlan(*plan); err != nil {
		return nil, err
	}
	plan.Touch(actor.AccountID, s.Now())

	if err := s.planRepo.UpdatePlan(ctx, *plan); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewDuplicateError(duplicatePlanMsg)
		}
		s.LogError(ctx, err, "Failed to update plan", slog.String("plan_id", planID))
		return nil, err
	}

	s.LogInfo(ctx, "Plan updated", slog.String("plan_id", planID))
	return plan, nil
}

func (s *planService) RemovePlan(ctx context.Context, actor domain.Principal, planID string) error {
	if err := s.Authorize(ctx, actor, domain.OpManagePlans); err != nil {
		return err
	}
	if err := s.planRepo.MarkPlanDeleted(ctx, planID, s.Now(), actor.AccountID); err != nil {
		return s.notFoundOr(ctx, err, "Plan not found", "Failed to remove plan", slog.String("plan_id", planID))
	}
	s.LogInfo(ctx, "Plan removed", slog.String("plan_id", planID))
	return nil
}
