package main

import (
	"log/slog"

	"slot-reservation/cmd/bootstrap"
	"slot-reservation/internal/infra/db"
	"slot-reservation/internal/infra/migrate"
	"slot-reservation/internal/pkg/config"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var (
		atlasBinary string
		embedded    bool
	)

	c := &cobra.Command{
		Use:   "migrate",
		Short: "Apply migrations/ to the configured Postgres database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger := bootstrap.NewLogger(cfg)
			ctx := cmd.Context()

			if !embedded {
				return migrate.NewAtlas(atlasBinary, logger).Apply(ctx, cfg.DB.BuildDSN())
			}

			pool, cleanup, err := db.Connect(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer cleanup()

			applied, err := migrate.Embedded(ctx, pool)
			if err != nil {
				return err
			}
			logger.Info("migrations applied", slog.Int("applied", len(applied)), slog.Any("files", applied))
			return nil
		},
	}

	c.Flags().StringVar(&atlasBinary, "atlas-bin", "atlas", "path to the atlas CLI")
	c.Flags().BoolVar(&embedded, "embedded", false, "apply the embedded SQL files without the atlas CLI")
	return c
}
