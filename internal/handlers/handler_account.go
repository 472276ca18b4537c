package handlers

import (
	"net/http"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/search", h.searchAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.PUT("/:id/coach", h.assignCoach)
	}
}

// createAccount godoc
// @Summary Create an account
// @Description Creates an account of the given role. Owners create any role, managers coaches and members, coaches members only.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.MutationResponse{data=dto.AccountResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "E-mail or phone already in use"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}
	mutationResponse(c, http.StatusCreated, "Account created", dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts by role
// @Description Coaches only see the members they coach.
// @Tags accounts
// @Produce json
// @Param role query string true "OWNER, MANAGER, COACH or MEMBER"
// @Success 200 {array} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	role, err := domain.ParseRole(params.Role)
	if err != nil {
		respondError(c, apperrors.NewValidationError("Invalid role"), "Invalid role filter")
		return
	}

	accounts, err := h.accountService.ListAccountsByRole(c.Request.Context(), actor, role)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// searchAccounts godoc
// @Summary Search members by e-mail
// @Tags accounts
// @Produce json
// @Param email query string false "Exact e-mail, case-insensitive. Empty lists all members."
// @Success 200 {array} dto.AccountResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/search [get]
func (h *accountHandler) searchAccounts(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var params dto.SearchAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	accounts, err := h.accountService.SearchMembersByEmail(c.Request.Context(), actor, params.Email)
	if err != nil {
		respondError(c, err, "Failed to search accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getAccount godoc
// @Summary Get an account
// @Description Returns the account with its current plan and invoice.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} dto.MutationResponse{data=dto.AccountResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}
	mutationResponse(c, http.StatusOK, "Account updated", dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Remove an account
// @Description Soft deletes the account. Its invoices and attendance are kept.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} dto.ErrorResponse "Cannot remove yourself"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	if err := h.accountService.RemoveAccount(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to remove account")
		return
	}
	mutationResponse(c, http.StatusOK, "Account removed", nil)
}

// assignCoach godoc
// @Summary Assign a coach to a member
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Member account ID"
// @Param request body dto.AssignCoachRequest true "Coach"
// @Success 200 {object} dto.MutationResponse{data=dto.AccountResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/coach [put]
func (h *accountHandler) assignCoach(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.AssignCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.AssignCoach(c.Request.Context(), actor, c.Param("id"), req.CoachID)
	if err != nil {
		respondError(c, err, "Failed to assign coach")
		return
	}
	mutationResponse(c, http.StatusOK, "Coach assigned", dto.ToAccountResponse(account))
}
