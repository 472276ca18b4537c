package dto

import (
	"time"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
)

// MutationResponse is returned by every create/update/delete endpoint.
type MutationResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is returned for every failure.
type ErrorResponse struct {
	Message string                 `json:"message"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

// DateRangeQuery defines optional from/to query parameters (YYYY-MM-DD, inclusive, UTC days).
type DateRangeQuery struct {
	From *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// ToDateRange converts the query into a domain range. The upper bound covers the whole day.
func (q DateRangeQuery) ToDateRange() domain.DateRange {
	r := domain.DateRange{From: q.From}
	if q.To != nil {
		end := q.To.Add(24*time.Hour - time.Nanosecond)
		r.To = &end
	}
	return r
}
