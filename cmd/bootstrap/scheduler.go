package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"slot-reservation/internal/pkg/config"
	"slot-reservation/internal/usecase/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(StartReconcileSchedule),
)

const reconcileTimeout = 2 * time.Minute

// StartReconcileSchedule runs the reconciler once at startup and then on
// RECONCILE_SCHEDULE. Overlapping runs are skipped, not queued.
func StartReconcileSchedule(lc fx.Lifecycle, cfg config.Config, rc *commands.Reconciler, logger *slog.Logger) error {
	if !cfg.Reconcile.Enabled {
		logger.Info("availability reconciliation disabled")
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()
		// Run logs and counts its own outcome
		_, _ = rc.Run(ctx)
	}
	if _, err := c.AddFunc(cfg.Reconcile.Schedule, run); err != nil {
		return fmt.Errorf("invalid RECONCILE_SCHEDULE %q: %w", cfg.Reconcile.Schedule, err)
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go run()
			c.Start()
			logger.Info("availability reconciliation scheduled", "schedule", cfg.Reconcile.Schedule)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-c.Stop().Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
	return nil
}
