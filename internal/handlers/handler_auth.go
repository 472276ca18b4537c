package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/SscSPs/gym_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the public authentication routes. Credential endpoints
// share one rate limiter.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade, limit gin.HandlerFunc) {
	h := newAuthHandler(authService)

	auth := r.Group("/api/v1/auth", limit)
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/google", h.googleLogin)
		auth.POST("/forgot-password", h.forgotPassword)
		auth.POST("/reset-password/:token", h.resetPassword)
	}
}

// registerSessionRoutes sets up the authenticated auth routes.
func registerSessionRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	rg.GET("/auth/me", h.me)
	rg.POST("/auth/change-password", h.changePassword)
}

// register godoc
// @Summary Register a member
// @Description Public sign-up. The new account is always a member.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.MutationResponse{data=dto.AccountResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "E-mail or phone already registered"
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register account")
		return
	}
	mutationResponse(c, http.StatusCreated, "Account registered", dto.ToAccountResponse(account))
}

// login godoc
// @Summary Log in
// @Description Authenticates with e-mail and password and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, toLoginResponse(session))
}

// googleLogin godoc
// @Summary Log in with Google
// @Description Exchanges a Google ID token for a bearer token. The e-mail must belong to an existing account.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/google [post]
func (h *authHandler) googleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.authService.GoogleLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err, "Google login failed")
		return
	}
	c.JSON(http.StatusOK, toLoginResponse(session))
}

// forgotPassword godoc
// @Summary Request a password reset
// @Description E-mails a single-use reset link to the account.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account e-mail"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/forgot-password [post]
func (h *authHandler) forgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to start password reset")
		return
	}
	mutationResponse(c, http.StatusOK, "Password reset link sent", nil)
}

// resetPassword godoc
// @Summary Reset a password
// @Description Sets a new password using the token from the reset link.
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired token"
// @Router /auth/reset-password/{token} [post]
func (h *authHandler) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}
	mutationResponse(c, http.StatusOK, "Password has been reset", nil)
}

// me godoc
// @Summary Current account
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	account, err := h.authService.Me(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to load current account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// changePassword godoc
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Wrong old password"
// @Security BearerAuth
// @Router /auth/change-password [post]
func (h *authHandler) changePassword(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), actor, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Password changed", slog.String("account_id", actor.AccountID))
	mutationResponse(c, http.StatusOK, "Password changed", nil)
}

func toLoginResponse(s *portssvc.AuthSession) dto.LoginResponse {
	return dto.LoginResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		Account:   dto.ToAccountResponse(s.Account),
	}
}
