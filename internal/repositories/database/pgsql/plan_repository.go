package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/gym_management_app/internal/apperrors"
	"github.com/SscSPs/gym_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gym_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/gym_management_app/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPlanRepository struct {
	BaseRepository
}

func newPgxPlanRepository(pool *pgxpool.Pool) portsrepo.PlanRepositoryFacade {
	return &PgxPlanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PlanRepositoryFacade = (*PgxPlanRepository)(nil)

const planSelectQuery = `
	SELECT plan_id, name, price, duration_months, description,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at
	FROM plans
	WHERE deleted_at IS NULL`

func scanPlan(row scanner) (*domain.Plan, error) {
	var m models.Plan
	err := row.Scan(
		&m.PlanID, &m.Name, &m.Price, &m.DurationMonths, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	plan := toDomainPlan(m)
	return &plan, nil
}

func toDomainPlan(m models.Plan) domain.Plan {
	return domain.Plan{
		PlanID:         m.PlanID,
		Name:           m.Name,
		Price:          m.Price,
		DurationMonths: m.DurationMonths,
		Description:    m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt: timePtr(m.DeletedAt.Time, m.DeletedAt.Valid),
	}
}

// FindPlanByID retrieves a live plan.
func (r *PgxPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	plan, err := scanPlan(r.Pool.QueryRow(ctx, planSelectQuery+` AND plan_id = $1`, planID))
	if err != nil {
		return nil, mapReadError(err, "plan "+planID)
	}
	return plan, nil
}

// ListPlans returns the live catalogue ordered by price, then name.
func (r *PgxPlanRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	rows, err := r.Pool.Query(ctx, planSelectQuery+` ORDER BY price, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	plans := []domain.Plan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		plans = append(plans, *plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan rows: %w", err)
	}
	return plans, nil
}

func (r *PgxPlanRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	query := `
		INSERT INTO plans (plan_id, name, price, duration_months, description,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		plan.PlanID, plan.Name, plan.Price, plan.DurationMonths, plan.Description,
		plan.CreatedAt, plan.CreatedBy, plan.LastUpdatedAt, plan.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "plan "+plan.Name)
	}
	return nil
}

func (r *PgxPlanRepository) UpdatePlan(ctx context.Context, plan domain.Plan) error {
	query := `
		UPDATE plans
		SET name = $2, price = $3, duration_months = $4, description = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE plan_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		plan.PlanID, plan.Name, plan.Price, plan.DurationMonths, plan.Description,
		plan.LastUpdatedAt, plan.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "plan "+plan.Name)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkPlanDeleted soft deletes a plan so existing invoices keep their reference.
func (r *PgxPlanRepository) MarkPlanDeleted(ctx context.Context, planID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE plans
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE plan_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, planID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete plan %s: %w", planID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
