package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type planHandler struct {
	planService portssvc.PlanSvcFacade
}

func newPlanHandler(ps portssvc.PlanSvcFacade) *planHandler {
	return &planHandler{planService: ps}
}

// registerPlanRoutes registers the plan catalogue routes.
func registerPlanRoutes(rg *gin.RouterGroup, planService portssvc.PlanSvcFacade) {
	h := newPlanHandler(planService)

	plans := rg.Group("/plans")
	{
		plans.POST("", h.createPlan)
		plans.GET("", h.listPlans)
		plans.GET("/:id", h.getPlan)
		plans.PUT("/:id", h.updatePlan)
		plans.DELETE("/:id", h.deletePlan)
	}
}

// createPlan godoc
// @Summary Create a plan
// @Tags plans
// @Accept json
// @Produce json
// @Param plan body dto.CreatePlanRequest true "Plan details"
// @Success 201 {object} dto.MutationResponse{data=dto.PlanResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Plan name already exists"
// @Security BearerAuth
// @Router /plans [post]
func (h *planHandler) createPlan(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create plan")
		return
	}
	mutationResponse(c, http.StatusCreated, "Plan created", dto.ToPlanResponse(plan))
}

// listPlans godoc
// @Summary List plans
// @Tags plans
// @Produce json
// @Success 200 {array} dto.PlanResponse
// @Security BearerAuth
// @Router /plans [get]
func (h *planHandler) listPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPlanResponse(plans))
}

// getPlan godoc
// @Summary Get a plan
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.PlanResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /plans/{id} [get]
func (h *planHandler) getPlan(c *gin.Context) {
	plan, err := h.planService.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get plan")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}

// updatePlan godoc
// @Summary Update a plan
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param plan body dto.UpdatePlanRequest true "Fields to change"
// @Success 200 {object} dto.MutationResponse{data=dto.PlanResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /plans/{id} [put]
func (h *planHandler) updatePlan(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update plan")
		return
	}
	mutationResponse(c, http.StatusOK, "Plan updated", dto.ToPlanResponse(plan))
}

// deletePlan godoc
// @Summary Remove a plan
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.MutationResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /plans/{id} [delete]
func (h *planHandler) deletePlan(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	if err := h.planService.RemovePlan(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to remove plan")
		return
	}
	mutationResponse(c, http.StatusOK, "Plan removed", nil)
}
