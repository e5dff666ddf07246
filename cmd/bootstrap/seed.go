package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"slot-reservation/internal/pkg/catalogfile"
	"slot-reservation/internal/pkg/config"
	"slot-reservation/internal/usecase/commands"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var SeedModule = fx.Module("seed",
	fx.Invoke(SeedOnStart),
)

// SeedOnStart creates the resources listed in SEED_FILE, owned by
// SEED_OWNER_ID, before the server accepts requests.
func SeedOnStart(lc fx.Lifecycle, cfg config.Config, catalog commands.CatalogCommands, logger *slog.Logger) error {
	if cfg.Seed.File == "" {
		return nil
	}
	ownerID, err := uuid.Parse(cfg.Seed.OwnerID)
	if err != nil {
		return fmt.Errorf("invalid SEED_OWNER_ID %q: %w", cfg.Seed.OwnerID, err)
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			items, err := catalogfile.Load(cfg.Seed.File)
			if err != nil {
				return err
			}
			n, err := commands.SeedCatalog(ctx, catalog, ownerID, items)
			if err != nil {
				return err
			}
			logger.Info("catalog seeded", "file", cfg.Seed.File, "resources", n)
			return nil
		},
	})
	return nil
}
