package pgsql

import (
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(dbPool),
		PlanRepo:       newPgxPlanRepository(dbPool),
		InvoiceRepo:    newPgxInvoiceRepository(dbPool),
		AttendanceRepo: newPgxAttendanceRepository(dbPool),
		ExpenseRepo:    newPgxExpenseRepository(dbPool),
		ReportingRepo:  newReportingRepository(dbPool),
	}
}
