package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/SscSPs/gym_management_app/internal/middleware"
	"github.com/SscSPs/gym_management_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const testJWTSecret = "middleware-test-secret"

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewJSONHandler(io.Discard, nil))))
	r.GET("/probe", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	var seen domain.Principal
	r := newEngine(middleware.AuthMiddleware(testJWTSecret), func(c *gin.Context) {
		seen, _ = middleware.GetPrincipalFromContext(c)
		c.Status(http.StatusNoContent)
	})

	valid, _, err := utils.GenerateJWT("acc-42", domain.RoleManager, testJWTSecret, time.Hour, "test", time.Now())
	require.NoError(t, err)
	expired, _, err := utils.GenerateJWT("acc-42", domain.RoleManager, testJWTSecret, -time.Hour, "test", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
	assert.Equal(t, domain.Principal{AccountID: "acc-42", Role: domain.RoleManager}, seen)
}

func TestRateLimit(t *testing.T) {
	rate, err := limiter.NewRateFromFormatted("2-M")
	require.NoError(t, err)
	lim := limiter.New(memory.NewStore(), rate)

	r := newEngine(middleware.RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestStructuredLogging_KeepsUpstreamRequestID(t *testing.T) {
	r := newEngine(func(c *gin.Context) { c.Status(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Request-ID", "5b0c8a8e-5f5a-4b44-9c49-2f0b7d0c1a11")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "5b0c8a8e-5f5a-4b44-9c49-2f0b7d0c1a11", w.Header().Get("X-Request-ID"))
}
