package components

import (
	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/pkg/clock"
	"slot-reservation/internal/usecase/commands"
	"slot-reservation/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		fx.Annotate(
			reservation.NewDefaultPriceCalculator,
			fx.As(new(reservation.PriceCalculator)),
		),
		reservation.NewFactory,
		commands.NewAggregator,
		commands.NewReconciler,
	),
	commandsModule,
	queriesModule,
)

var commandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCatalogUseCase,
		commands.NewReservationUseCase,
		commands.NewFavoriteUseCase,
	),
)

var queriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCatalogQueries,
		queries.NewReservationQueries,
		queries.NewFavoriteQueries,
		queries.NewPlaceQueries,
	),
)
