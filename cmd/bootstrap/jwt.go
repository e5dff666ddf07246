package bootstrap

import (
	"slot-reservation/internal/pkg/config"
	"slot-reservation/internal/pkg/jwt"
	"slot-reservation/internal/usecase"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		usecase.NewTokenValidator,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret)
}
