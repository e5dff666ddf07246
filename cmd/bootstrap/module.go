package bootstrap

import (
	"slot-reservation/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule wires everything below the HTTP layer. The seed command runs on
// it alone.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	MetricsModule,
	components.PersistenceModule,
	components.UseCaseModule,
)

// Module is the full serve process.
var Module = fx.Options(
	CoreModule,
	JWTModule,
	components.HandlerModule,
	SchedulerModule,
	SeedModule,
)
