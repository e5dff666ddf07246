package components

import (
	"errors"
	"log/slog"

	"slot-reservation/internal/infra/memory"
	"slot-reservation/internal/infra/postgres"
	"slot-reservation/internal/pkg/config"
	"slot-reservation/internal/pkg/idgen"
	"slot-reservation/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(NewStore),
)

type StoreResult struct {
	fx.Out

	UnitOfWork shared.UnitOfWork
	IDs        idgen.Generator
}

// NewStore selects the store by STORE_DRIVER. Both drivers hand the same
// UnitOfWork and id generator contracts to the usecases.
func NewStore(cfg config.Config, pool *pgxpool.Pool, logger *slog.Logger) (StoreResult, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		if pool == nil {
			return StoreResult{}, errors.New("postgres store selected without a database pool")
		}
		logger.Info("using postgres store", "database", cfg.DB.DBName)
		return StoreResult{
			UnitOfWork: postgres.NewStore(pool, logger),
			IDs:        postgres.NewSequences(pool, logger),
		}, nil
	default:
		logger.Info("using in-memory store")
		return StoreResult{
			UnitOfWork: memory.NewStore(logger),
			IDs:        idgen.NewSequence(),
		}, nil
	}
}
