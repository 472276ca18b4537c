package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.addExpense)
		expenses.GET("", h.listExpenses)
	}
}

// addExpense godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense"
// @Success 201 {object} dto.MutationResponse{data=dto.ExpenseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) addExpense(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	expense, err := h.expenseService.AddExpense(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to add expense")
		return
	}
	mutationResponse(c, http.StatusCreated, "Expense recorded", dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date, inclusive (YYYY-MM-DD)"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), actor, q.ToDateRange())
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpenseResponse(expenses))
}
