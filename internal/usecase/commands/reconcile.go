package commands

import (
	"context"
	"log/slog"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/infra"
	"slot-reservation/internal/pkg/metrics"
	"slot-reservation/internal/usecase/shared"
)

const (
	ReconcileResultClean    = "clean"
	ReconcileResultRepaired = "repaired"
	ReconcileResultFailed   = "failed"
)

type ReconcileReport struct {
	Checked             int
	CountsRepaired      int
	OccupancyMismatches int
}

// Reconciler recomputes available_count from slot state. Stored counts that
// drifted are reset; occupied slots that disagree with active reservations
// are only reported because either side could be the wrong one.
type Reconciler struct {
	uow     shared.UnitOfWork
	logger  *slog.Logger
	metrics metrics.Recorder
}

func NewReconciler(uow shared.UnitOfWork, logger *slog.Logger, m metrics.Recorder) *Reconciler {
	return &Reconciler{uow: uow, logger: logger, metrics: m}
}

func (rc *Reconciler) Run(ctx context.Context) (*ReconcileReport, error) {
	report, err := rc.run(ctx)
	switch {
	case err != nil:
		rc.metrics.ReconcileRun(ReconcileResultFailed)
		rc.logger.ErrorContext(ctx, "availability reconciliation failed", slog.String("error", err.Error()))
	case report.CountsRepaired > 0 || report.OccupancyMismatches > 0:
		rc.metrics.ReconcileRun(ReconcileResultRepaired)
		rc.logger.WarnContext(ctx, "availability reconciliation found drift",
			slog.Int("checked", report.Checked),
			slog.Int("counts_repaired", report.CountsRepaired),
			slog.Int("occupancy_mismatches", report.OccupancyMismatches))
	default:
		rc.metrics.ReconcileRun(ReconcileResultClean)
		rc.logger.DebugContext(ctx, "availability reconciliation clean", slog.Int("checked", report.Checked))
	}
	return report, err
}

func (rc *Reconciler) run(ctx context.Context) (*ReconcileReport, error) {
	var keys []resource.Key
	err := rc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		keys, err = tx.Resources().Keys(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{}
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		repaired, mismatched, err := rc.reconcileOne(ctx, key)
		if err != nil {
			return report, err
		}
		report.Checked++
		if repaired {
			report.CountsRepaired++
		}
		if mismatched {
			report.OccupancyMismatches++
		}
	}
	return report, nil
}

func (rc *Reconciler) reconcileOne(ctx context.Context, key resource.Key) (repaired, mismatched bool, err error) {
	err = rc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repaired, mismatched = false, false

		res, err := tx.Resources().GetForUpdate(ctx, key)
		if infra.IsKind(err, infra.KindNotFound) {
			return nil // deleted since Keys was read
		}
		if err != nil {
			return err
		}

		occupied, err := tx.Slots().Occupied(ctx, key)
		if err != nil {
			return err
		}
		active, err := tx.Reservations().ListActiveByResource(ctx, key)
		if err != nil {
			return err
		}
		held := make([]int, len(active))
		for i, r := range active {
			held[i] = r.Slot().Index
		}

		if onlySlots, onlyReservations := slot.Diff(occupied, held); len(onlySlots) > 0 || len(onlyReservations) > 0 {
			mismatched = true
			reportViolation(ctx, rc.logger, rc.metrics, InvariantOccupancyMismatch, key,
				slog.Any("occupied_without_reservation", onlySlots),
				slog.Any("reserved_but_free", onlyReservations))
		}

		derived := res.Geometry().Total() - len(occupied)
		if derived == res.Available() {
			return nil
		}
		reportViolation(ctx, rc.logger, rc.metrics, InvariantAvailableDrift, key,
			slog.Int("stored", res.Available()),
			slog.Int("derived", derived))
		repaired = true
		return tx.Resources().SetAvailable(ctx, key, derived)
	})
	return repaired, mismatched, err
}
