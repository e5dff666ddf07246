//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AvailableCount reads the stored counter, bypassing the query layer.
func AvailableCount(t *testing.T, db DBLike, resourceType string, id int64) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var n int
	err := db.QueryRow(ctx,
		`SELECT available_count FROM resources WHERE resource_type = $1 AND id = $2`,
		resourceType, id).Scan(&n)
	require.NoError(t, err, "failed to read available_count")
	return n
}

// OccupiedSlots counts occupied slot rows for one resource.
func OccupiedSlots(t *testing.T, db DBLike, resourceType string, id int64) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var n int
	err := db.QueryRow(ctx,
		`SELECT count(*) FROM slots WHERE resource_type = $1 AND resource_id = $2 AND state = 'occupied'`,
		resourceType, id).Scan(&n)
	require.NoError(t, err, "failed to count occupied slots")
	return n
}

// ForceAvailableCount writes a drifted counter so reconciliation has
// something to repair.
func ForceAvailableCount(t *testing.T, db DBLike, resourceType string, id int64, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.Exec(ctx,
		`UPDATE resources SET available_count = $3 WHERE resource_type = $1 AND id = $2`,
		resourceType, id, n)
	require.NoError(t, err, "failed to force available_count")
}

// CountRows counts every row of table.
func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var n int
	err := db.QueryRow(ctx, `SELECT count(*) FROM `+pgx.Identifier{table}.Sanitize()).Scan(&n)
	require.NoError(t, err, "failed to count rows of %s", table)
	return n
}
