//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

var (
	buildResetOnce sync.Once
	resetSQL       string
	resetErr       error
)

// ResetDB empties every table and restarts every sequence so resource and
// reservation ids start again at 1.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildResetOnce.Do(func() {
		resetSQL, resetErr = buildResetSQL(ctx, pool)
	})
	if resetErr != nil {
		return fmt.Errorf("failed to build reset SQL: %w", resetErr)
	}
	_, err := pool.Exec(ctx, resetSQL)
	return err
}

func buildResetSQL(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	tables, err := names(ctx, pool, `
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public' AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
	if err != nil {
		return "", err
	}
	sequences, err := names(ctx, pool, `SELECT sequencename FROM pg_sequences WHERE schemaname = 'public'`)
	if err != nil {
		return "", err
	}

	var stmts []string
	if len(tables) > 0 {
		quoted := make([]string, len(tables))
		for i, t := range tables {
			quoted[i] = "public." + pq.QuoteIdentifier(t)
		}
		stmts = append(stmts, "TRUNCATE "+strings.Join(quoted, ", ")+" RESTART IDENTITY CASCADE")
	}
	for _, s := range sequences {
		stmts = append(stmts, "ALTER SEQUENCE public."+pq.QuoteIdentifier(s)+" RESTART")
	}
	if len(stmts) == 0 {
		return "SELECT 1", nil
	}
	return strings.Join(stmts, ";\n") + ";", nil
}

func names(ctx context.Context, pool *pgxpool.Pool, query string) ([]string, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
