package commands

import (
	"context"
	"log/slog"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/pkg/metrics"
	"slot-reservation/internal/usecase/shared"
)

// Aggregator is the only writer of available_count during normal operation.
// It runs inside the caller's transaction, after the slot transition.
type Aggregator struct {
	logger  *slog.Logger
	metrics metrics.Recorder
}

func NewAggregator(logger *slog.Logger, m metrics.Recorder) *Aggregator {
	return &Aggregator{logger: logger, metrics: m}
}

// Decrement fails with an invariant violation when the count is already zero.
// The ledger checks slot state first, so reaching that means drift.
func (a *Aggregator) Decrement(ctx context.Context, tx shared.Tx, key resource.Key) error {
	applied, err := tx.Resources().AdjustAvailable(ctx, key, -1)
	if err != nil {
		return shared.TranslateNotFound(err, shared.ErrResourceNotFound)
	}
	if !applied {
		a.report(ctx, InvariantAvailableBelowZero, key)
		return errs.Wrapf(ErrAvailabilityUnderflow, "resource %s", key)
	}
	return nil
}

// Increment clamps at total_slots. Overshoot is reported but not returned so
// a cancellation is never refused because of bookkeeping drift.
func (a *Aggregator) Increment(ctx context.Context, tx shared.Tx, key resource.Key) error {
	applied, err := tx.Resources().AdjustAvailable(ctx, key, 1)
	if err != nil {
		return shared.TranslateNotFound(err, shared.ErrResourceNotFound)
	}
	if !applied {
		a.report(ctx, InvariantAvailableAboveTotal, key)
	}
	return nil
}

func (a *Aggregator) report(ctx context.Context, invariant string, key resource.Key, attrs ...any) {
	reportViolation(ctx, a.logger, a.metrics, invariant, key, attrs...)
}

func reportViolation(ctx context.Context, logger *slog.Logger, m metrics.Recorder, invariant string, key resource.Key, attrs ...any) {
	args := append([]any{
		slog.String("invariant", invariant),
		slog.String("resource_type", key.Type.String()),
		slog.Int64("resource_id", key.ID),
	}, attrs...)
	logger.ErrorContext(ctx, "invariant violation", args...)
	m.InvariantViolation(invariant)
}
