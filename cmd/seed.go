package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"slot-reservation/cmd/bootstrap"
	"slot-reservation/internal/pkg/catalogfile"
	"slot-reservation/internal/pkg/config"
	"slot-reservation/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newSeedCmd() *cobra.Command {
	var (
		file  string
		owner string
	)

	c := &cobra.Command{
		Use:   "seed",
		Short: "Create the resources listed in a TOML catalog file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ownerID, err := uuid.Parse(owner)
			if err != nil {
				return fmt.Errorf("invalid --owner %q: %w", owner, err)
			}
			items, err := catalogfile.Load(file)
			if err != nil {
				return err
			}
			return seed(cmd.Context(), ownerID, items)
		},
	}

	c.Flags().StringVar(&file, "file", "", "catalog TOML file with [[parking]] and [[ev]] tables")
	c.Flags().StringVar(&owner, "owner", "", "owner id (uuid) of the created resources")
	_ = c.MarkFlagRequired("file")
	_ = c.MarkFlagRequired("owner")
	return c
}

func seed(ctx context.Context, ownerID uuid.UUID, items []catalogfile.Item) error {
	var (
		catalog commands.CatalogCommands
		cfg     config.Config
		logger  *slog.Logger
	)
	app := fx.New(
		bootstrap.CoreModule,
		fx.Populate(&catalog, &cfg, &logger),
		fx.NopLogger,
	)
	if err := app.Start(ctx); err != nil {
		return err
	}

	if cfg.Store.Driver != config.StoreDriverPostgres {
		logger.Warn("seeding the in-memory store; the resources are gone when this command exits")
	}
	n, seedErr := commands.SeedCatalog(ctx, catalog, ownerID, items)
	stopErr := app.Stop(context.Background())
	if seedErr != nil {
		return errors.Join(seedErr, stopErr)
	}
	logger.Info("catalog seeded", "resources", n)
	return stopErr
}
