package middleware

import (
	"context"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey    = contextKey("logger")
	principalCtxKey = contextKey("principal")
)

// WithPrincipal stores the authenticated caller in ctx.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// PrincipalFromCtx retrieves the authenticated caller from ctx.
func PrincipalFromCtx(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalCtxKey).(domain.Principal)
	return p, ok
}

// GetPrincipalFromContext retrieves the authenticated caller from the Gin request.
// It returns the principal and a boolean indicating if it was found.
func GetPrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	return PrincipalFromCtx(c.Request.Context())
}
