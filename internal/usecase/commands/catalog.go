package commands

import (
	"context"
	"log/slog"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/pkg/clock"
	"slot-reservation/internal/pkg/idgen"
	"slot-reservation/internal/pkg/metrics"
	"slot-reservation/internal/usecase/queries"
	"slot-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type DeleteResourceResult struct {
	CancelledReservations int
}

type CatalogCommands interface {
	CreateResource(ctx context.Context, t resource.Type, ownerID uuid.UUID, d resource.Descriptor) (*queries.ResourceView, error)
	UpdateResource(ctx context.Context, key resource.Key, ownerID uuid.UUID, p resource.Patch) (*queries.ResourceView, error)
	DeleteResource(ctx context.Context, key resource.Key, ownerID uuid.UUID) (*DeleteResourceResult, error)
}

type catalogUseCaseImpl struct {
	uow     shared.UnitOfWork
	ids     idgen.Generator
	clock   clock.Clock
	logger  *slog.Logger
	metrics metrics.Recorder
}

func NewCatalogUseCase(uow shared.UnitOfWork, ids idgen.Generator, clk clock.Clock, logger *slog.Logger, m metrics.Recorder) CatalogCommands {
	return &catalogUseCaseImpl{uow: uow, ids: ids, clock: clk, logger: logger, metrics: m}
}

func (uc *catalogUseCaseImpl) CreateResource(ctx context.Context, t resource.Type, ownerID uuid.UUID, d resource.Descriptor) (*queries.ResourceView, error) {
	if !t.IsValid() {
		return nil, resource.ErrInvalidType
	}
	// validate before consuming an id
	if _, err := resource.NewResource(resource.NewKey(t, 0), ownerID, d, uc.clock.Now()); err != nil {
		return nil, err
	}

	id, err := uc.ids.Next(ctx, namespaceOf(t))
	if err != nil {
		return nil, err
	}
	res, err := resource.NewResource(resource.NewKey(t, id), ownerID, d, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Resources().Create(ctx, res); err != nil {
			return err
		}
		return tx.Slots().Init(ctx, res.Key(), res.Geometry().Total())
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "resource created",
		slog.String("resource_type", t.String()),
		slog.Int64("resource_id", id),
		slog.Int("total_slots", res.Geometry().Total()))
	return queries.NewResourceView(res), nil
}

func (uc *catalogUseCaseImpl) UpdateResource(ctx context.Context, key resource.Key, ownerID uuid.UUID, p resource.Patch) (*queries.ResourceView, error) {
	var view *queries.ResourceView
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().GetForUpdate(ctx, key)
		if err != nil {
			return shared.TranslateNotFound(err, shared.ErrResourceNotFound)
		}
		if !res.IsOwnedBy(ownerID) {
			return ErrResourceNotOwned
		}
		if err := res.ApplyPatch(p, uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Resources().Update(ctx, res); err != nil {
			return err
		}
		view = queries.NewResourceView(res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// DeleteResource cancels every active reservation on the resource, then
// removes its slots and the resource itself. Reservation history is kept.
func (uc *catalogUseCaseImpl) DeleteResource(ctx context.Context, key resource.Key, ownerID uuid.UUID) (*DeleteResourceResult, error) {
	result := &DeleteResourceResult{}
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().GetForUpdate(ctx, key)
		if err != nil {
			return shared.TranslateNotFound(err, shared.ErrResourceNotFound)
		}
		if !res.IsOwnedBy(ownerID) {
			return ErrResourceNotOwned
		}

		active, err := tx.Reservations().ListActiveByResource(ctx, key)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		// fn may be retried by the store
		result.CancelledReservations = 0
		for _, r := range active {
			changed, err := tx.Reservations().Cancel(ctx, r.ID(), now)
			if err != nil {
				return err
			}
			if changed {
				result.CancelledReservations++
			}
		}

		if err := tx.Slots().Drop(ctx, key); err != nil {
			return err
		}
		return tx.Resources().Delete(ctx, key)
	})
	if err != nil {
		return nil, err
	}

	for range result.CancelledReservations {
		uc.metrics.ReservationCancelled(key.Type.String())
	}
	uc.logger.InfoContext(ctx, "resource deleted",
		slog.String("resource_type", key.Type.String()),
		slog.Int64("resource_id", key.ID),
		slog.Int("cancelled_reservations", result.CancelledReservations))
	return result, nil
}

func namespaceOf(t resource.Type) idgen.Namespace {
	if t == resource.TypeEV {
		return idgen.NamespaceEV
	}
	return idgen.NamespaceParking
}
