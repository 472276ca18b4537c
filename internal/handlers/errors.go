package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/SscSPs/gym_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError writes the status and user-safe message for err.
func respondError(c *gin.Context, err error, logMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)

	body := dto.ErrorResponse{Message: defaultMessage(status, err)}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code != http.StatusInternalServerError {
			body.Message = appErr.Message
		}
		body.Errors = appErr.Fields
	}

	if status >= http.StatusInternalServerError {
		logger.Error(logMsg, slog.String("error", err.Error()))
	} else {
		logger.Warn(logMsg, slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.AbortWithStatusJSON(status, body)
}

func defaultMessage(status int, err error) string {
	switch status {
	case http.StatusBadRequest:
		return "Invalid request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "You are not allowed to perform this action"
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusConflict:
		if errors.Is(err, apperrors.ErrDuplicate) {
			return "Resource already exists"
		}
		return "Request conflicts with the current state"
	default:
		return "Internal server error"
	}
}

// respondBindError reports a request that failed binding or validation as 400,
// with one entry per invalid field when the validator produced them.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		respondError(c, apperrors.NewFieldValidationError("Validation failed", fields), "Request validation failed")
		return
	}

	msg := "Invalid request format"
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		msg = "Invalid value for field " + typeErr.Field
	} else if errors.As(err, &syntaxErr) {
		msg = "Malformed JSON body"
	}
	respondError(c, apperrors.NewAppError(http.StatusBadRequest, msg, err), "Failed to bind request")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid e-mail address"
	case "uuid":
		return "must be a valid ID"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "role":
		return "must be one of OWNER, MANAGER, COACH, MEMBER"
	case "phone":
		return "must be a valid phone number"
	default:
		return "is invalid"
	}
}

// principal returns the authenticated caller, answering 401 when absent.
func principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized"), "Principal missing from context")
		return domain.Principal{}, false
	}
	return p, true
}

func mutationResponse(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.MutationResponse{Message: message, Data: data})
}
