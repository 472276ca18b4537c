package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/SscSPs/gym_management_app/internal/middleware"
	"github.com/SscSPs/gym_management_app/internal/platform/config"
	"github.com/SscSPs/gym_management_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "handler-test-secret"

type HandlersTestSuite struct {
	suite.Suite
	router *gin.Engine

	accounts   *MockAccountService
	auth       *MockAuthService
	billing    *MockBillingService
	attendance *MockAttendanceService
	reporting  *MockReportingService

	manager domain.Principal
	coach   domain.Principal
	member  domain.Principal
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(RegisterValidators())
}

func (s *HandlersTestSuite) SetupTest() {
	s.accounts = new(MockAccountService)
	s.auth = new(MockAuthService)
	s.billing = new(MockBillingService)
	s.attendance = new(MockAttendanceService)
	s.reporting = new(MockReportingService)

	s.manager = domain.Principal{AccountID: uuid.NewString(), Role: domain.RoleManager}
	s.coach = domain.Principal{AccountID: uuid.NewString(), Role: domain.RoleCoach}
	s.member = domain.Principal{AccountID: uuid.NewString(), Role: domain.RoleMember}

	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewJSONHandler(io.Discard, nil))))
	RegisterRoutes(s.router, &config.Config{JWTSecret: testJWTSecret, IsProduction: true}, &portssvc.ServiceContainer{
		Account:    s.accounts,
		Auth:       s.auth,
		Billing:    s.billing,
		Attendance: s.attendance,
		Reporting:  s.reporting,
	}, RouteOptions{})
}

func (s *HandlersTestSuite) TearDownTest() {
	s.accounts.AssertExpectations(s.T())
	s.auth.AssertExpectations(s.T())
	s.billing.AssertExpectations(s.T())
	s.attendance.AssertExpectations(s.T())
	s.reporting.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) token(p domain.Principal) string {
	tok, _, err := utils.GenerateJWT(p.AccountID, p.Role, testJWTSecret, time.Hour, "test", time.Now())
	s.Require().NoError(err)
	return tok
}

func (s *HandlersTestSuite) do(method, path string, as *domain.Principal, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+s.token(*as))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type mutationBody struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func (s *HandlersTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *HandlersTestSuite) TestProtectedRoutesRequireToken() {
	w := s.do(http.MethodGet, "/api/v1/accounts?role=MEMBER", nil, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Authorization header required", decode[dto.ErrorResponse](s.T(), w).Message)
}

func (s *HandlersTestSuite) TestCreateAccount_Success() {
	created := &domain.Account{AccountID: uuid.NewString(), Name: "Ravi Kumar", Role: domain.RoleMember, Email: "ravi@gym.test"}
	s.accounts.On("CreateAccount", mock.Anything, s.coach, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.Email == "ravi@gym.test" && req.Role == "MEMBER"
	})).Return(created, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/accounts", &s.coach, map[string]any{
		"name":     "Ravi Kumar",
		"email":    "ravi@gym.test",
		"phone":    "+91 98765 43210",
		"password": "secret1",
		"role":     "MEMBER",
	})

	s.Equal(http.StatusCreated, w.Code)
	body := decode[mutationBody](s.T(), w)
	s.Equal("Account created", body.Message)
	s.Equal(created.AccountID, body.Data["accountID"])
}

func (s *HandlersTestSuite) TestCreateAccount_FieldErrors() {
	w := s.do(http.MethodPost, "/api/v1/accounts", &s.manager, map[string]any{
		"name":     "Ravi Kumar",
		"phone":    "abc",
		"password": "secret1",
		"role":     "COOK",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	body := decode[dto.ErrorResponse](s.T(), w)
	s.Equal("Validation failed", body.Message)
	fields := map[string]string{}
	for _, fe := range body.Errors {
		fields[fe.Field] = fe.Message
	}
	s.Equal("is required", fields["email"])
	s.Equal("must be a valid phone number", fields["phone"])
	s.Equal("must be one of OWNER, MANAGER, COACH, MEMBER", fields["role"])
}

func (s *HandlersTestSuite) TestCreateAccount_MalformedJSON() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token(s.manager))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestServiceErrorsMapToStatus() {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"forbidden", apperrors.NewForbiddenError("Coaches can only create members"), http.StatusForbidden, "Coaches can only create members"},
		{"duplicate from repository", fmt.Errorf("save: %w", apperrors.ErrDuplicate), http.StatusConflict, "Resource already exists"},
		{"not found", apperrors.NewNotFoundError("Coach not found"), http.StatusNotFound, "Coach not found"},
		{"internal details hidden", errors.New("dial tcp 10.0.0.5:5432: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.accounts.On("CreateAccount", mock.Anything, s.manager, mock.Anything).Return(nil, tt.err).Once()

			w := s.do(http.MethodPost, "/api/v1/accounts", &s.manager, map[string]any{
				"name": "Asha", "email": "asha@gym.test", "phone": "9876543210", "password": "secret1", "role": "COACH",
			})

			s.Equal(tt.status, w.Code)
			s.Equal(tt.message, decode[dto.ErrorResponse](s.T(), w).Message)
			s.NotContains(w.Body.String(), "10.0.0.5")
		})
	}
}

func (s *HandlersTestSuite) TestListAccounts_CoachWithoutMembers() {
	s.accounts.On("ListAccountsByRole", mock.Anything, s.coach, domain.RoleMember).Return([]domain.Account{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/accounts?role=member", &s.coach, nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *HandlersTestSuite) TestListAccounts_RoleRequired() {
	w := s.do(http.MethodGet, "/api/v1/accounts", &s.manager, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestSearchRouteDoesNotShadowAccountID() {
	s.accounts.On("SearchMembersByEmail", mock.Anything, s.manager, "ravi@gym.test").Return([]domain.Account{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/accounts/search?email=ravi@gym.test", &s.manager, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestAssignPlan() {
	accountID, planID := uuid.NewString(), uuid.NewString()

	s.Run("success", func() {
		s.SetupTest()
		invoice := &domain.Invoice{
			InvoiceID:   uuid.NewString(),
			AccountID:   accountID,
			PlanID:      planID,
			Amount:      decimal.NewFromInt(1000),
			Discount:    decimal.NewFromInt(200),
			FinalAmount: decimal.NewFromInt(800),
			Status:      domain.InvoiceStatusPaid,
		}
		s.billing.On("AssignPlan", mock.Anything, s.manager, mock.MatchedBy(func(req dto.AssignPlanRequest) bool {
			return req.AccountID == accountID && req.Discount != nil && req.Discount.Equal(decimal.NewFromInt(200)) && !req.Force
		})).Return(invoice, nil).Once()

		w := s.do(http.MethodPost, "/api/v1/billing/assign", &s.manager, map[string]any{
			"accountID": accountID, "planID": planID, "discount": 200,
		})

		s.Equal(http.StatusCreated, w.Code)
		body := decode[mutationBody](s.T(), w)
		s.Equal("Plan assigned", body.Message)
		s.Equal("800", body.Data["finalAmount"])
	})

	s.Run("active plan conflict", func() {
		s.SetupTest()
		s.billing.On("AssignPlan", mock.Anything, s.manager, mock.Anything).
			Return(nil, apperrors.NewConflictError("Account already has an active plan")).Once()

		w := s.do(http.MethodPost, "/api/v1/billing/assign", &s.manager, map[string]any{
			"accountID": accountID, "planID": planID,
		})

		s.Equal(http.StatusConflict, w.Code)
		s.Equal("Account already has an active plan", decode[dto.ErrorResponse](s.T(), w).Message)
	})

	s.Run("ids must be uuids", func() {
		s.SetupTest()
		w := s.do(http.MethodPost, "/api/v1/billing/assign", &s.manager, map[string]any{
			"accountID": "42", "planID": planID,
		})
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlersTestSuite) TestMarkAttendance_StatusReflectsCreation() {
	tests := []struct {
		name    string
		created bool
		status  int
		message string
	}{
		{"first mark of the day", true, http.StatusCreated, "Attendance marked"},
		{"repeat mark updates", false, http.StatusOK, "Attendance updated"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			record := &domain.Attendance{
				AttendanceID:   uuid.NewString(),
				AccountID:      s.member.AccountID,
				AttendanceDate: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
				Status:         domain.AttendancePresent,
				MarkedBy:       s.member.AccountID,
			}
			s.attendance.On("MarkAttendance", mock.Anything, s.member, mock.MatchedBy(func(req dto.MarkAttendanceRequest) bool {
				return req.AccountID == nil && req.Status == "PRESENT"
			})).Return(record, tt.created, nil).Once()

			w := s.do(http.MethodPost, "/api/v1/attendance", &s.member, map[string]any{"status": "PRESENT"})

			s.Equal(tt.status, w.Code)
			body := decode[mutationBody](s.T(), w)
			s.Equal(tt.message, body.Message)
			s.Equal("2024-03-10", body.Data["attendanceDate"])
		})
	}
}

func (s *HandlersTestSuite) TestListAttendance_PassesAccountAndRange() {
	accountID := uuid.NewString()
	s.attendance.On("ListAttendance", mock.Anything, s.coach, accountID, mock.MatchedBy(func(r domain.DateRange) bool {
		return r.From != nil && r.From.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) &&
			r.To != nil && r.To.Equal(time.Date(2024, time.March, 31, 23, 59, 59, 999999999, time.UTC))
	})).Return([]domain.Attendance{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/accounts/"+accountID+"/attendance?from=2024-03-01&to=2024-03-31", &s.coach, nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *HandlersTestSuite) TestReports() {
	last := time.Date(2024, time.February, 20, 18, 0, 0, 0, time.UTC)
	summaries := []domain.MemberSummary{{
		Account:         domain.Account{AccountID: "m-1", Name: "Lapsed"},
		AttendanceCount: 3,
		LastAttendance:  &last,
	}}

	s.Run("inactive accounts", func() {
		s.SetupTest()
		s.reporting.On("InactiveAccounts", mock.Anything, s.coach).Return(summaries, nil).Once()

		w := s.do(http.MethodGet, "/api/v1/reports/inactive-accounts", &s.coach, nil)

		s.Equal(http.StatusOK, w.Code)
		rows := decode[[]dto.MemberReportRow](s.T(), w)
		s.Require().Len(rows, 1)
		s.Equal("m-1", rows[0].AccountID)
		s.Equal(3, rows[0].AttendanceCount)
	})

	s.Run("member forbidden", func() {
		s.SetupTest()
		s.reporting.On("PaymentsDue", mock.Anything, s.member).
			Return(nil, apperrors.NewForbiddenError("You are not allowed to view reports")).Once()

		w := s.do(http.MethodGet, "/api/v1/reports/payments-due", &s.member, nil)
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("finance", func() {
		s.SetupTest()
		s.reporting.On("FinanceSummary", mock.Anything, s.manager, domain.DateRange{}).Return(&domain.FinanceSummary{
			Income:   decimal.NewFromInt(5000),
			Expenses: decimal.RequireFromString("1250.50"),
			Net:      decimal.RequireFromString("3749.50"),
		}, nil).Once()

		w := s.do(http.MethodGet, "/api/v1/reports/finance", &s.manager, nil)

		s.Equal(http.StatusOK, w.Code)
		body := decode[map[string]any](s.T(), w)
		s.Equal("3749.5", body["net"])
	})
}

func (s *HandlersTestSuite) TestLogin() {
	account := &domain.Account{AccountID: uuid.NewString(), Role: domain.RoleMember, Email: "ravi@gym.test"}
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	s.auth.On("Login", mock.Anything, "ravi@gym.test", "secret1").
		Return(&portssvc.AuthSession{Token: "signed.jwt.token", ExpiresAt: expires, Account: account}, nil).Once()
	s.auth.On("Login", mock.Anything, "ravi@gym.test", "wrong").
		Return(nil, apperrors.NewUnauthorizedError("Invalid email or password")).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/login", nil, map[string]any{"email": "ravi@gym.test", "password": "secret1"})
	s.Equal(http.StatusOK, w.Code)
	resp := decode[dto.LoginResponse](s.T(), w)
	s.Equal("signed.jwt.token", resp.Token)
	s.Equal(account.AccountID, resp.Account.AccountID)

	w = s.do(http.MethodPost, "/api/v1/auth/login", nil, map[string]any{"email": "ravi@gym.test", "password": "wrong"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid email or password", decode[dto.ErrorResponse](s.T(), w).Message)
}

func (s *HandlersTestSuite) TestResetPassword_UsesPathToken() {
	s.auth.On("ResetPassword", mock.Anything, "abc123", "newsecret").Return(nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/reset-password/abc123", nil, map[string]any{"password": "newsecret"})

	s.Equal(http.StatusOK, w.Code)
	s.Equal("Password has been reset", decode[mutationBody](s.T(), w).Message)
}

func (s *HandlersTestSuite) TestMe() {
	s.auth.On("Me", mock.Anything, s.member).Return(&domain.Account{AccountID: s.member.AccountID, Role: domain.RoleMember}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/auth/me", &s.member, nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(s.member.AccountID, decode[dto.AccountResponse](s.T(), w).AccountID)
}
