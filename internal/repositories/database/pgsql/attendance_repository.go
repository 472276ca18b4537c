package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/gym_management_app/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAttendanceRepository struct {
	BaseRepository
}

func newPgxAttendanceRepository(pool *pgxpool.Pool) portsrepo.AttendanceRepositoryFacade {
	return &PgxAttendanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AttendanceRepositoryFacade = (*PgxAttendanceRepository)(nil)

// dayLayout renders a calendar day in its own zone so the DATE column never
// shifts with the session time zone.
const dayLayout = "2006-01-02"

func toDomainAttendance(m models.Attendance) domain.Attendance {
	return domain.Attendance{
		AttendanceID:   m.AttendanceID,
		AccountID:      m.AccountID,
		AttendanceDate: m.AttendanceDate,
		MarkedAt:       m.MarkedAt,
		Status:         domain.AttendanceStatus(m.Status),
		MarkedBy:       m.MarkedBy,
		CreatedAt:      m.CreatedAt,
	}
}

// UpsertAttendance keeps one row per account and day. A repeated mark overwrites
// status, time and marker while the original id and creation time stay.
func (r *PgxAttendanceRepository) UpsertAttendance(ctx context.Context, attendance domain.Attendance) (*domain.Attendance, bool, error) {
	query := `
		INSERT INTO attendance (attendance_id, account_id, attendance_date, marked_at, status, marked_by, created_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)
		ON CONFLICT (account_id, attendance_date) DO UPDATE
		SET status = EXCLUDED.status, marked_at = EXCLUDED.marked_at, marked_by = EXCLUDED.marked_by
		RETURNING attendance_id, account_id, attendance_date, marked_at, status, marked_by, created_at, (xmax = 0) AS inserted;
	`
	var m models.Attendance
	var inserted bool
	err := r.Pool.QueryRow(ctx, query,
		attendance.AttendanceID,
		attendance.AccountID,
		attendance.AttendanceDate.Format(dayLayout),
		attendance.MarkedAt,
		string(attendance.Status),
		attendance.MarkedBy,
		attendance.CreatedAt,
	).Scan(&m.AttendanceID, &m.AccountID, &m.AttendanceDate, &m.MarkedAt, &m.Status, &m.MarkedBy, &m.CreatedAt, &inserted)
	if err != nil {
		return nil, false, mapWriteError(err, "attendance of account "+attendance.AccountID)
	}
	stored := toDomainAttendance(m)
	return &stored, inserted, nil
}

func (r *PgxAttendanceRepository) ListAttendance(ctx context.Context, accountID string, period domain.DateRange) ([]domain.Attendance, error) {
	where := &whereBuilder{}
	where.add("account_id = ?", accountID)
	if period.From != nil {
		where.add("attendance_date >= ?::date", period.From.Format(dayLayout))
	}
	if period.To != nil {
		where.add("attendance_date <= ?::date", period.To.Format(dayLayout))
	}
	query := `
		SELECT attendance_id, account_id, attendance_date, marked_at, status, marked_by, created_at
		FROM attendance` + where.String() + `
		ORDER BY attendance_date ASC`

	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance for account %s: %w", accountID, err)
	}
	defer rows.Close()

	records := []domain.Attendance{}
	for rows.Next() {
		var m models.Attendance
		if err := rows.Scan(&m.AttendanceID, &m.AccountID, &m.AttendanceDate, &m.MarkedAt, &m.Status, &m.MarkedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, toDomainAttendance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}
	return records, nil
}
