package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jordanmvolk/marquee/internal/db"
	"github.com/jordanmvolk/marquee/internal/domain"
)

// unitColumns is the canonical SELECT column list for units.
const unitColumns = `id, plan_id, parent_id, title, kind, status, duration,
		start_date, due_date, calendar_synced, calendar_event_id, calendar_provider,
		created_at, updated_at`

// SQLiteUnitRepo implements UnitRepo using a SQLite database.
// Dependencies are stored separately; see SQLiteDependencyRepo.
type SQLiteUnitRepo struct {
	db db.DBTX
}

// NewSQLiteUnitRepo creates a new SQLiteUnitRepo.
func NewSQLiteUnitRepo(conn db.DBTX) *SQLiteUnitRepo {
	return &SQLiteUnitRepo{db: conn}
}

func (r *SQLiteUnitRepo) Create(ctx context.Context, u *domain.Unit) error {
	query := `INSERT INTO units (id, plan_id, parent_id, title, kind, status, duration,
		start_date, due_date, calendar_synced, calendar_event_id, calendar_provider,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.PlanID,
		nullableStringToValue(u.ParentID),
		u.Title,
		string(u.Kind),
		string(u.Status),
		u.Duration,
		u.StartDate.Format(dateLayout),
		u.DueDate.Format(dateLayout),
		boolToInt(u.CalendarSynced),
		u.CalendarEventID,
		string(u.CalendarProvider),
		u.CreatedAt.Format(time.RFC3339),
		u.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting unit: %w", err)
	}
	return nil
}

func (r *SQLiteUnitRepo) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanUnit(row)
}

func (r *SQLiteUnitRepo) ListActivities(ctx context.Context, planID string) ([]*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units
		WHERE plan_id = ? AND kind = 'activity' ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()
	return r.scanUnits(rows)
}

func (r *SQLiteUnitRepo) ListSubtasks(ctx context.Context, activityID string) ([]*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units
		WHERE parent_id = ? AND kind = 'subtask' ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, activityID)
	if err != nil {
		return nil, fmt.Errorf("listing subtasks: %w", err)
	}
	defer rows.Close()
	return r.scanUnits(rows)
}

func (r *SQLiteUnitRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE plan_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing units by plan: %w", err)
	}
	defer rows.Close()
	return r.scanUnits(rows)
}

func (r *SQLiteUnitRepo) Update(ctx context.Context, u *domain.Unit) error {
	query := `UPDATE units SET plan_id = ?, parent_id = ?, title = ?, kind = ?, status = ?,
		duration = ?, start_date = ?, due_date = ?, calendar_synced = ?, calendar_event_id = ?,
		calendar_provider = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		u.PlanID,
		nullableStringToValue(u.ParentID),
		u.Title,
		string(u.Kind),
		string(u.Status),
		u.Duration,
		u.StartDate.Format(dateLayout),
		u.DueDate.Format(dateLayout),
		boolToInt(u.CalendarSynced),
		u.CalendarEventID,
		string(u.CalendarProvider),
		u.UpdatedAt.Format(time.RFC3339),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating unit: %w", err)
	}
	return nil
}

func (r *SQLiteUnitRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM units WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting unit: %w", err)
	}
	return nil
}

// scanUnit scans a single unit from a *sql.Row.
func (r *SQLiteUnitRepo) scanUnit(row *sql.Row) (*domain.Unit, error) {
	var u domain.Unit
	var kindStr, statusStr, providerStr string
	var parentIDStr sql.NullString
	var syncedInt int
	var startDateStr, dueDateStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&u.ID, &u.PlanID, &parentIDStr, &u.Title, &kindStr, &statusStr, &u.Duration,
		&startDateStr, &dueDateStr, &syncedInt, &u.CalendarEventID, &providerStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("unit: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning unit: %w", err)
	}

	return populateUnit(&u, kindStr, statusStr, providerStr, parentIDStr, syncedInt,
		startDateStr, dueDateStr, createdAtStr, updatedAtStr)
}

// scanUnits scans multiple units from *sql.Rows.
func (r *SQLiteUnitRepo) scanUnits(rows *sql.Rows) ([]*domain.Unit, error) {
	var units []*domain.Unit
	for rows.Next() {
		var u domain.Unit
		var kindStr, statusStr, providerStr string
		var parentIDStr sql.NullString
		var syncedInt int
		var startDateStr, dueDateStr, createdAtStr, updatedAtStr string

		err := rows.Scan(
			&u.ID, &u.PlanID, &parentIDStr, &u.Title, &kindStr, &statusStr, &u.Duration,
			&startDateStr, &dueDateStr, &syncedInt, &u.CalendarEventID, &providerStr,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning unit row: %w", err)
		}

		unit, err := populateUnit(&u, kindStr, statusStr, providerStr, parentIDStr, syncedInt,
			startDateStr, dueDateStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating units: %w", err)
	}
	return units, nil
}

// populateUnit fills in parsed fields on a Unit after scanning raw values.
func populateUnit(
	u *domain.Unit,
	kindStr, statusStr, providerStr string,
	parentIDStr sql.NullString,
	syncedInt int,
	startDateStr, dueDateStr, createdAtStr, updatedAtStr string,
) (*domain.Unit, error) {
	u.Kind = domain.UnitKind(kindStr)
	u.Status = domain.UnitStatus(statusStr)
	u.CalendarProvider = domain.CalendarProvider(providerStr)
	u.CalendarSynced = intToBool(syncedInt)
	if parentIDStr.Valid {
		parentID := parentIDStr.String
		u.ParentID = &parentID
	}

	var parseErr error
	u.StartDate, parseErr = time.Parse(dateLayout, startDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	u.DueDate, parseErr = time.Parse(dateLayout, dueDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing due_date: %w", parseErr)
	}
	u.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	u.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return u, nil
}
