package handlers

import (
	"context"
	"net/http"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/inactive-accounts", h.inactiveAccounts)
		reports.GET("/expiring-plans", h.expiringPlans)
		reports.GET("/payments-due", h.paymentsDue)
		reports.GET("/finance", h.finance)
	}
}

type memberReportFunc func(ctx context.Context, actor domain.Principal) ([]domain.MemberSummary, error)

func (h *reportingHandler) memberReport(c *gin.Context, run memberReportFunc, logMsg string) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	summaries, err := run(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, logMsg)
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberReport(summaries))
}

// inactiveAccounts godoc
// @Summary Inactive members
// @Description Members with no attendance, or none within the inactivity threshold. Coaches see their own members.
// @Tags reports
// @Produce json
// @Success 200 {array} dto.MemberReportRow
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/inactive-accounts [get]
func (h *reportingHandler) inactiveAccounts(c *gin.Context) {
	h.memberReport(c, h.reportingService.InactiveAccounts, "Failed to build inactive accounts report")
}

// expiringPlans godoc
// @Summary Expired plans
// @Description Members whose current plan is due now or earlier.
// @Tags reports
// @Produce json
// @Success 200 {array} dto.MemberReportRow
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/expiring-plans [get]
func (h *reportingHandler) expiringPlans(c *gin.Context) {
	h.memberReport(c, h.reportingService.ExpiringPlans, "Failed to build expiring plans report")
}

// paymentsDue godoc
// @Summary Payments due
// @Description Members whose current plan falls due within the payment window.
// @Tags reports
// @Produce json
// @Success 200 {array} dto.MemberReportRow
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/payments-due [get]
func (h *reportingHandler) paymentsDue(c *gin.Context) {
	h.memberReport(c, h.reportingService.PaymentsDue, "Failed to build payments due report")
}

// finance godoc
// @Summary Finance summary
// @Description Income, expenses and net over an optional period.
// @Tags reports
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date, inclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.FinanceSummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/finance [get]
func (h *reportingHandler) finance(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	summary, err := h.reportingService.FinanceSummary(c.Request.Context(), actor, q.ToDateRange())
	if err != nil {
		respondError(c, err, "Failed to build finance summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinanceSummaryResponse(summary))
}
