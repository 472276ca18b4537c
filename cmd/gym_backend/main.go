package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/gym_management_app/internal/adapters/google"
	"github.com/SscSPs/gym_management_app/internal/adapters/mail"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/core/services"
	"github.com/SscSPs/gym_management_app/internal/handlers"
	"github.com/SscSPs/gym_management_app/internal/middleware"
	"github.com/SscSPs/gym_management_app/internal/platform/config"
	"github.com/SscSPs/gym_management_app/internal/platform/metrics"
	"github.com/SscSPs/gym_management_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/gym_management_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// @title Gym Management API
// @version 1.0
// @description Members, plans, invoices, attendance and reports for a single gym.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	authLimiter, err := newAuthLimiter(cfg)
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, services.Collaborators{
		Mailer:          mail.NewMailer(cfg.SMTP),
		IDTokenVerifier: google.NewIDTokenVerifier(cfg.GoogleClientID),
		Metrics:         appMetrics,
	})

	if err := bootstrapOwner(ctx, cfg, serviceContainer, logger); err != nil {
		logger.Error("Failed to bootstrap owner account", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.MetricsMiddleware(appMetrics))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouteOptions{
		AuthLimiter:    authLimiter,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", slog.String("error", err.Error()))
		}
	case err := <-errCh:
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		stop()
		database.ClosePgxPool(dbPool)
		os.Exit(1)
	}
}

func parseLogLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// bootstrapOwner creates the configured owner when the database has none.
func bootstrapOwner(ctx context.Context, cfg *config.Config, sc *portssvc.ServiceContainer, logger *slog.Logger) error {
	if !cfg.Owner.Enabled() {
		logger.Info("Owner bootstrap not configured, skipping")
		return nil
	}
	account, created, err := sc.Account.EnsureOwner(ctx, portssvc.OwnerSeed{
		Name:     cfg.Owner.Name,
		Email:    cfg.Owner.Email,
		Phone:    cfg.Owner.Phone,
		Password: cfg.Owner.Password,
	})
	if err != nil {
		return err
	}
	if created {
		logger.Info("Bootstrap owner created", slog.String("account_id", account.AccountID))
	}
	return nil
}
