package services

import (
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/platform/config"
	"github.com/SscSPs/gym_management_app/internal/platform/metrics"
)

// Collaborators are the outbound adapters services depend on besides repositories.
type Collaborators struct {
	Mailer          portssvc.Mailer
	IDTokenVerifier portssvc.IDTokenVerifier
	Metrics         *metrics.Metrics
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps Collaborators) *portssvc.ServiceContainer {
	common := []ServiceOption{WithMetrics(deps.Metrics)}

	var authOptions []AuthServiceOption
	if deps.Mailer != nil {
		authOptions = append(authOptions, WithMailer(deps.Mailer))
	}
	if deps.IDTokenVerifier != nil {
		authOptions = append(authOptions, WithIDTokenVerifier(deps.IDTokenVerifier))
	}

	return &portssvc.ServiceContainer{
		Account:    NewAccountService(repos.AccountRepo, common...),
		Auth:       NewAuthService(cfg, repos.AccountRepo, authOptions, common...),
		Plan:       NewPlanService(repos.PlanRepo, common...),
		Billing:    NewBillingService(repos.AccountRepo, repos.PlanRepo, repos.InvoiceRepo, common...),
		Attendance: NewAttendanceService(repos.AccountRepo, repos.AttendanceRepo, cfg.Location, common...),
		Expense:    NewExpenseService(repos.ExpenseRepo, common...),
		Reporting: NewReportingService(repos.ReportingRepo, domain.ReportRules{
			InactivityThreshold: cfg.InactivityThreshold,
			PaymentDueWindow:    cfg.PaymentDueWindow,
		}, common...),
	}
}
