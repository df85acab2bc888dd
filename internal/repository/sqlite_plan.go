package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jordanmvolk/marquee/internal/db"
	"github.com/jordanmvolk/marquee/internal/domain"
)

// planColumns is the canonical SELECT column list for plans.
const planColumns = `id, name, channel, notes, start_date, status, archived_at, created_at, updated_at`

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	query := `INSERT INTO plans (id, name, channel, notes, start_date, status, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Channel,
		p.Notes,
		p.StartDate.Format(dateLayout),
		string(p.Status),
		nullableTimeToString(p.ArchivedAt, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanPlan(row)
}

func (r *SQLitePlanRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY created_at`
	if !includeArchived {
		query = `SELECT ` + planColumns + ` FROM plans WHERE status != 'archived' ORDER BY created_at`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		p, err := scanPlanRow(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	query := `UPDATE plans SET name = ?, channel = ?, notes = ?, start_date = ?, status = ?,
		archived_at = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Channel,
		p.Notes,
		p.StartDate.Format(dateLayout),
		string(p.Status),
		nullableTimeToString(p.ArchivedAt, time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE plans SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM plans WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}

// scanPlan scans a single plan from a *sql.Row.
func (r *SQLitePlanRepo) scanPlan(row *sql.Row) (*domain.Plan, error) {
	var p domain.Plan
	var statusStr, startDateStr, createdAtStr, updatedAtStr string
	var archivedAtStr sql.NullString

	err := row.Scan(&p.ID, &p.Name, &p.Channel, &p.Notes, &startDateStr, &statusStr,
		&archivedAtStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	return populatePlan(&p, statusStr, startDateStr, archivedAtStr, createdAtStr, updatedAtStr)
}

func scanPlanRow(rows *sql.Rows) (*domain.Plan, error) {
	var p domain.Plan
	var statusStr, startDateStr, createdAtStr, updatedAtStr string
	var archivedAtStr sql.NullString

	err := rows.Scan(&p.ID, &p.Name, &p.Channel, &p.Notes, &startDateStr, &statusStr,
		&archivedAtStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning plan row: %w", err)
	}

	return populatePlan(&p, statusStr, startDateStr, archivedAtStr, createdAtStr, updatedAtStr)
}

func populatePlan(p *domain.Plan, statusStr, startDateStr string, archivedAtStr sql.NullString, createdAtStr, updatedAtStr string) (*domain.Plan, error) {
	p.Status = domain.PlanStatus(statusStr)
	p.ArchivedAt = parseNullableTime(archivedAtStr, time.RFC3339)

	var parseErr error
	p.StartDate, parseErr = time.Parse(dateLayout, startDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return p, nil
}
