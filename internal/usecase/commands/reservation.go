package commands

import (
	"context"
	"log/slog"
	"time"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/infra"
	"slot-reservation/internal/pkg/clock"
	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/pkg/idgen"
	"slot-reservation/internal/pkg/metrics"
	"slot-reservation/internal/usecase/queries"
	"slot-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	OwnerID   uuid.UUID
	Resource  resource.Key
	SlotIndex int
	StartTime time.Time
	EndTime   time.Time
}

type CancelReservationResult struct {
	Reservation *queries.ReservationView
	// Changed is false when the reservation was already cancelled.
	Changed bool
}

// ReservationCommands is the only path that moves a slot between free and
// occupied.
type ReservationCommands interface {
	CreateReservation(ctx context.Context, req CreateReservationRequest) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, ownerID uuid.UUID, id int64) (*CancelReservationResult, error)
}

type reservationUseCaseImpl struct {
	uow                shared.UnitOfWork
	ids                idgen.Generator
	reservationFactory *reservation.Factory
	aggregator         *Aggregator
	clock              clock.Clock
	logger             *slog.Logger
	metrics            metrics.Recorder
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	ids idgen.Generator,
	reservationFactory *reservation.Factory,
	aggregator *Aggregator,
	clock clock.Clock,
	logger *slog.Logger,
	m metrics.Recorder,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:                uow,
		ids:                ids,
		reservationFactory: reservationFactory,
		aggregator:         aggregator,
		clock:              clock,
		logger:             logger,
		metrics:            m,
	}
}

// CreateReservation runs lookup, validation, the slot compare-and-set, the
// count decrement and the ledger write in one transaction. The record is
// written last so nothing is persisted for a slot that turned out taken.
func (r *reservationUseCaseImpl) CreateReservation(ctx context.Context, req CreateReservationRequest) (*queries.ReservationView, error) {
	var view *queries.ReservationView
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().GetForUpdate(ctx, req.Resource)
		if err != nil {
			return shared.TranslateNotFound(err, shared.ErrResourceNotFound)
		}

		ts, err := r.reservationFactory.Validate(res, req.SlotIndex, req.StartTime, req.EndTime)
		if err != nil {
			return err
		}

		key := slot.NewKey(res.Key(), req.SlotIndex)
		if err := tx.Slots().MarkOccupied(ctx, key); err != nil {
			return r.translateOccupied(err)
		}
		if err := r.aggregator.Decrement(ctx, tx, res.Key()); err != nil {
			return err
		}

		id, err := r.ids.Next(ctx, idgen.NamespaceReservation)
		if err != nil {
			return err
		}
		created := r.reservationFactory.CreateReservation(id, res, req.OwnerID, req.SlotIndex, ts)
		if err := tx.Reservations().Create(ctx, created); err != nil {
			return r.translateOccupied(err)
		}

		view = queries.NewReservationView(created, res)
		return nil
	})
	if err != nil {
		if errs.Is(err, ErrSlotOccupied) {
			r.metrics.ReservationConflict(req.Resource.Type.String())
		}
		return nil, err
	}

	r.metrics.ReservationCreated(req.Resource.Type.String())
	r.logger.InfoContext(ctx, "reservation created",
		slog.Int64("reservation_id", view.ID),
		slog.String("resource_type", view.ResourceType.String()),
		slog.Int64("resource_id", view.ResourceID),
		slog.Int("slot_index", view.SlotIndex),
		slog.String("owner_id", view.OwnerID.String()))
	return view, nil
}

// CancelReservation is idempotent: cancelling twice succeeds and releases
// the slot once.
func (r *reservationUseCaseImpl) CancelReservation(ctx context.Context, ownerID uuid.UUID, id int64) (*CancelReservationResult, error) {
	result := &CancelReservationResult{}
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result.Changed = false

		current, err := tx.Reservations().Get(ctx, id)
		if err != nil {
			return shared.TranslateNotFound(err, shared.ErrReservationNotFound)
		}
		if !current.IsOwnedBy(ownerID) {
			return ErrReservationNotOwned
		}

		key := current.Slot().Resource
		res, err := tx.Resources().GetForUpdate(ctx, key)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return err
		}
		// res is nil from here on when the resource was deleted

		if current.IsCancelled() {
			result.Reservation = queries.NewReservationView(current, res)
			return nil
		}

		now := r.clock.Now()
		changed, err := tx.Reservations().Cancel(ctx, id, now)
		if err != nil {
			return err
		}
		if !changed {
			// lost a race with another cancellation of the same reservation
			reloaded, err := tx.Reservations().Get(ctx, id)
			if err != nil {
				return err
			}
			result.Reservation = queries.NewReservationView(reloaded, res)
			return nil
		}
		current.Cancel(now)
		result.Changed = true

		if res != nil {
			if err := r.release(ctx, tx, current.Slot()); err != nil {
				return err
			}
		}
		result.Reservation = queries.NewReservationView(current, res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Changed {
		r.metrics.ReservationCancelled(result.Reservation.ResourceType.String())
		r.logger.InfoContext(ctx, "reservation cancelled",
			slog.Int64("reservation_id", id),
			slog.String("resource_type", result.Reservation.ResourceType.String()),
			slog.Int64("resource_id", result.Reservation.ResourceID),
			slog.Int("slot_index", result.Reservation.SlotIndex))
	}
	return result, nil
}

// release frees the slot and increments the count. A slot that is already
// free is drift: it is reported and the count is left alone.
func (r *reservationUseCaseImpl) release(ctx context.Context, tx shared.Tx, key slot.Key) error {
	err := tx.Slots().MarkFree(ctx, key)
	switch {
	case err == nil:
		return r.aggregator.Increment(ctx, tx, key.Resource)
	case infra.IsKind(err, infra.KindConflict):
		reportViolation(ctx, r.logger, r.metrics, InvariantSlotAlreadyFree, key.Resource, slog.Int("slot_index", key.Index))
		return nil
	default:
		return err
	}
}

func (r *reservationUseCaseImpl) translateOccupied(err error) error {
	if infra.IsKind(err, infra.KindConflict) {
		return ErrSlotOccupied
	}
	return err
}
