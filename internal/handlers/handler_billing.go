package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// billingHandler serves plan assignment and the invoice ledger.
type billingHandler struct {
	billingService portssvc.BillingSvcFacade
}

func newBillingHandler(bs portssvc.BillingSvcFacade) *billingHandler {
	return &billingHandler{billingService: bs}
}

// registerBillingRoutes registers plan assignment and invoice routes.
func registerBillingRoutes(rg *gin.RouterGroup, billingService portssvc.BillingSvcFacade) {
	h := newBillingHandler(billingService)

	billing := rg.Group("/billing")
	{
		billing.POST("/assign", h.assignPlan)
		billing.GET("/upgrade-quote", h.upgradeQuote)
		billing.POST("/upgrade", h.upgradePlan)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.listInvoices)
		invoices.POST("", h.generateInvoice)
		invoices.GET("/:id", h.getInvoice)
		invoices.PUT("/:id", h.updateInvoice)
	}

	rg.GET("/accounts/:id/invoices", h.listAccountInvoices)
}

// assignPlan godoc
// @Summary Assign a plan
// @Description Bills the plan to the account. While the current plan is still active the request is rejected unless force is set.
// @Tags billing
// @Accept json
// @Produce json
// @Param request body dto.AssignPlanRequest true "Assignment"
// @Success 201 {object} dto.MutationResponse{data=dto.InvoiceResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Active plan exists"
// @Security BearerAuth
// @Router /billing/assign [post]
func (h *billingHandler) assignPlan(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := h.billingService.AssignPlan(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to assign plan")
		return
	}
	mutationResponse(c, http.StatusCreated, "Plan assigned", dto.ToInvoiceResponse(invoice))
}

// upgradeQuote godoc
// @Summary Quote a plan upgrade
// @Description Pro-rates the unused part of the current plan as a discount on the new plan.
// @Tags billing
// @Produce json
// @Param accountID query string true "Account ID"
// @Param planID query string true "New plan ID"
// @Success 200 {object} domain.UpgradeQuote
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /billing/upgrade-quote [get]
func (h *billingHandler) upgradeQuote(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var params dto.UpgradeQuoteParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	quote, err := h.billingService.QuoteUpgrade(c.Request.Context(), actor, params.AccountID, params.PlanID)
	if err != nil {
		respondError(c, err, "Failed to quote upgrade")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// upgradePlan godoc
// @Summary Upgrade a plan
// @Description Bills the new plan, discounted by the quoted pro-ration unless a discount is given.
// @Tags billing
// @Accept json
// @Produce json
// @Param request body dto.UpgradePlanRequest true "Upgrade"
// @Success 201 {object} dto.MutationResponse{data=dto.InvoiceResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /billing/upgrade [post]
func (h *billingHandler) upgradePlan(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UpgradePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := h.billingService.UpgradePlan(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to upgrade plan")
		return
	}
	mutationResponse(c, http.StatusCreated, "Plan upgraded", dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List all invoices
// @Tags invoices
// @Produce json
// @Param from query string false "Payment date from (YYYY-MM-DD)"
// @Param to query string false "Payment date to, inclusive (YYYY-MM-DD)"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *billingHandler) listInvoices(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	invoices, err := h.billingService.ListAllInvoices(c.Request.Context(), actor, q.ToDateRange())
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// generateInvoice godoc
// @Summary Generate an ad-hoc invoice
// @Description Bills line items (locker, towel...) without touching the account's plan.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body dto.GenerateInvoiceRequest true "Items"
// @Success 201 {object} dto.MutationResponse{data=dto.InvoiceResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /invoices [post]
func (h *billingHandler) generateInvoice(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := h.billingService.GenerateInvoice(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to generate invoice")
		return
	}
	mutationResponse(c, http.StatusCreated, "Invoice generated", dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *billingHandler) getInvoice(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	invoice, err := h.billingService.GetInvoice(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Changes discount, status or plan. The final amount is recomputed.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body dto.UpdateInvoiceRequest true "Fields to change"
// @Success 200 {object} dto.MutationResponse{data=dto.InvoiceResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *billingHandler) updateInvoice(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := h.billingService.UpdateInvoice(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update invoice")
		return
	}
	mutationResponse(c, http.StatusOK, "Invoice updated", dto.ToInvoiceResponse(invoice))
}

// listAccountInvoices godoc
// @Summary List an account's invoices
// @Description Members may only list their own.
// @Tags invoices
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/invoices [get]
func (h *billingHandler) listAccountInvoices(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	invoices, err := h.billingService.ListInvoicesByAccount(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list account invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}
