// Package migrate applies the versioned schema in migrations/.
package migrate

import (
	"context"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"slot-reservation/internal/pkg/errs"
	"slot-reservation/migrations"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Atlas applies pending migrations through the atlas CLI, which also checks
// atlas.sum and records revisions in atlas_schema_revisions.
type Atlas struct {
	binary string
	logger *slog.Logger
}

func NewAtlas(binary string, logger *slog.Logger) *Atlas {
	if binary == "" {
		binary = "atlas"
	}
	return &Atlas{binary: binary, logger: logger}
}

func (a *Atlas) Apply(ctx context.Context, dsn string) error {
	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(migrations.FS))
	if err != nil {
		return errs.Wrap(err, "prepare atlas working dir")
	}
	defer func() { _ = workdir.Close() }()

	client, err := atlasexec.NewClient(workdir.Path(), a.binary)
	if err != nil {
		return errs.Wrap(err, "create atlas client")
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: dsn})
	if err != nil {
		return errs.Wrap(err, "atlas migrate apply")
	}
	a.logger.InfoContext(ctx, "migrations applied",
		slog.Int("applied", len(res.Applied)),
		slog.String("current", res.Current),
		slog.String("target", res.Target))
	return nil
}

// Embedded executes the same files directly, tracking them in
// schema_migrations. It needs no external binary and is what the e2e suite
// and `migrate --embedded` use.
func Embedded(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	files, err := sqlFiles(migrations.FS)
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)`); err != nil {
		return nil, errs.Wrap(err, "create schema_migrations")
	}

	var applied []string
	for _, f := range files {
		var done bool
		if err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, f).Scan(&done); err != nil {
			return applied, errs.Wrapf(err, "check %s", f)
		}
		if done {
			continue
		}

		body, err := fs.ReadFile(migrations.FS, f)
		if err != nil {
			return applied, errs.Wrapf(err, "read %s", f)
		}
		tx, err := pool.Begin(ctx)
		if err != nil {
			return applied, errs.Wrap(err, "begin migration")
		}
		if _, err := tx.Exec(ctx, string(body)); err != nil {
			_ = tx.Rollback(ctx)
			return applied, errs.Wrapf(err, "apply %s", f)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, f); err != nil {
			_ = tx.Rollback(ctx)
			return applied, errs.Wrapf(err, "record %s", f)
		}
		if err := tx.Commit(ctx); err != nil {
			return applied, errs.Wrapf(err, "commit %s", f)
		}
		applied = append(applied, f)
	}
	return applied, nil
}

func sqlFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errs.Wrap(err, "read migrations")
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
