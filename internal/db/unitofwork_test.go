package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitsOnSuccess(t *testing.T) {
	database := openTestDB(t)
	uow := NewSQLiteUnitOfWork(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO plans (id, name, start_date, created_at, updated_at)
			VALUES ('p1', 'Launch', '2024-01-01', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM plans`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	database := openTestDB(t)
	uow := NewSQLiteUnitOfWork(database)

	boom := errors.New("boom")
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO plans (id, name, start_date, created_at, updated_at)
			VALUES ('p1', 'Launch', '2024-01-01', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM plans`).Scan(&count))
	assert.Equal(t, 0, count, "failed transaction must leave no rows behind")
}
