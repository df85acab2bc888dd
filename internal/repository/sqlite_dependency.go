package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jordanmvolk/marquee/internal/db"
)

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: conn}
}

func (r *SQLiteDependencyRepo) Add(ctx context.Context, unitID, dependsOnID string) error {
	query := `INSERT OR IGNORE INTO unit_dependencies (unit_id, depends_on_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, unitID, dependsOnID)
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) Remove(ctx context.Context, unitID, dependsOnID string) error {
	query := `DELETE FROM unit_dependencies WHERE unit_id = ? AND depends_on_id = ?`
	_, err := r.db.ExecContext(ctx, query, unitID, dependsOnID)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) Replace(ctx context.Context, unitID string, dependsOn []string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM unit_dependencies WHERE unit_id = ?`, unitID); err != nil {
		return fmt.Errorf("clearing dependencies: %w", err)
	}
	for _, depID := range dependsOn {
		if err := r.Add(ctx, unitID, depID); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteDependencyRepo) ListForUnit(ctx context.Context, unitID string) ([]string, error) {
	query := `SELECT depends_on_id FROM unit_dependencies WHERE unit_id = ? ORDER BY depends_on_id`
	rows, err := r.db.QueryContext(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

// MapByPlan returns the dependency sets of every unit in the plan, keyed
// by unit id. Units without dependencies have no entry.
func (r *SQLiteDependencyRepo) MapByPlan(ctx context.Context, planID string) (map[string][]string, error) {
	query := `SELECT d.unit_id, d.depends_on_id
		FROM unit_dependencies d
		JOIN units u ON d.unit_id = u.id
		WHERE u.plan_id = ?
		ORDER BY d.unit_id, d.depends_on_id`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("mapping dependencies by plan: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var unitID, dependsOnID string
		if err := rows.Scan(&unitID, &dependsOnID); err != nil {
			return nil, fmt.Errorf("scanning dependency row: %w", err)
		}
		out[unitID] = append(out[unitID], dependsOnID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return out, nil
}

func scanIDs(rows *sql.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ids: %w", err)
	}
	return ids, nil
}
