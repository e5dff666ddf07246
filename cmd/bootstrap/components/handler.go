package components

import (
	"slot-reservation/internal/handler"
	"slot-reservation/internal/handler/api"
	"slot-reservation/internal/handler/middleware"
	"slot-reservation/internal/pkg/config"
	"slot-reservation/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewResourceHandlers,
		api.NewReservationHandler,
		api.NewFavoriteHandler,
		api.NewPlaceHandler,
		middleware.NewAuthMiddleware,
		middleware.NewRequestLogger,
	),
	fx.Invoke(registerRoutes),
)

type routeDeps struct {
	fx.In

	Engine       *gin.Engine
	Config       config.Config
	Metrics      *metrics.Metrics
	Resources    *api.ResourceHandlers
	Reservations *api.ReservationHandler
	Favorites    *api.FavoriteHandler
	Places       *api.PlaceHandler
	Auth         *middleware.AuthMiddleware
	Logging      *middleware.RequestLogger
}

func registerRoutes(d routeDeps) {
	h := handler.Handlers{
		Resources:    d.Resources,
		Reservations: d.Reservations,
		Favorites:    d.Favorites,
		Places:       d.Places,
		Auth:         d.Auth,
		Logging:      d.Logging,
	}
	if d.Config.Metrics.Enabled {
		h.Metrics = d.Metrics.Handler()
	}
	handler.NewRouter(d.Engine, d.Config, h)
}
