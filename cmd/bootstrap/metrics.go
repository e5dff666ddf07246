package bootstrap

import (
	"slot-reservation/internal/pkg/config"
	"slot-reservation/internal/pkg/metrics"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *metrics.Metrics) metrics.Recorder { return m },
	),
)

func NewMetrics(cfg config.Config) *metrics.Metrics {
	return metrics.New(cfg.Metrics.Namespace)
}
