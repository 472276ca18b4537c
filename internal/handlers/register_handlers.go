package handlers

import (
	"net/http"

	"github.com/SscSPs/gym_management_app/cmd/docs"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/middleware"
	"github.com/SscSPs/gym_management_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteOptions carries the optional collaborators of the HTTP surface.
type RouteOptions struct {
	// AuthLimiter throttles the public credential endpoints. Nil disables throttling.
	AuthLimiter *limiter.Limiter
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if opts.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	limit := func(c *gin.Context) { c.Next() }
	if opts.AuthLimiter != nil {
		limit = middleware.RateLimit(opts.AuthLimiter)
	}
	registerAuthRoutes(r, services.Auth, limit)

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerSessionRoutes(v1, service.Auth)
	registerAccountRoutes(v1, service.Account)
	registerPlanRoutes(v1, service.Plan)
	registerBillingRoutes(v1, service.Billing)
	registerAttendanceRoutes(v1, service.Attendance)
	registerExpenseRoutes(v1, service.Expense)
	registerReportingRoutes(v1, service.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
