package db

import (
	"context"
	"database/sql"
)

// DBTX is the slice of database/sql that *sql.DB and *sql.Tx share. Plan,
// unit, and dependency repositories are written against it, so the same
// repository code serves one-off reads on the pool and cascade writes inside
// a unit-of-work transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
