package queries

import (
	"context"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/infra"
	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrReservationNotOwned = errs.Define("reservation belongs to another owner", errs.ErrPermission)

type ReservationQueries interface {
	GetByID(ctx context.Context, actor uuid.UUID, id int64) (*ReservationView, error)
	GetByIDSystem(ctx context.Context, id int64) (*ReservationView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReservationQueries(uow shared.UnitOfWork) ReservationQueries {
	return &reservationQueriesImpl{uow: uow}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor uuid.UUID, id int64) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.OwnerID != actor {
		return nil, ErrReservationNotOwned
	}
	return view, nil
}

// GetByIDSystem skips the ownership check.
func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id int64) (*ReservationView, error) {
	var view *ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reservations().Get(ctx, id)
		if err != nil {
			return shared.TranslateNotFound(err, shared.ErrReservationNotFound)
		}
		res, err := lookupResource(ctx, tx, r.Slot().Resource)
		if err != nil {
			return err
		}
		view = NewReservationView(r, res)
		return nil
	})
	return view, err
}

// ListByOwner returns newest first and tolerates deleted resources.
func (q *reservationQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ReservationView, error) {
	views := []*ReservationView{}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		list, err := tx.Reservations().ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		cache := make(map[resource.Key]*resource.Resource)
		for _, r := range list {
			key := r.Slot().Resource
			res, seen := cache[key]
			if !seen {
				if res, err = lookupResource(ctx, tx, key); err != nil {
					return err
				}
				cache[key] = res
			}
			views = append(views, NewReservationView(r, res))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// lookupResource returns nil without error for a deleted resource.
func lookupResource(ctx context.Context, tx shared.Tx, key resource.Key) (*resource.Resource, error) {
	res, err := tx.Resources().Get(ctx, key)
	if infra.IsKind(err, infra.KindNotFound) {
		return nil, nil
	}
	return res, err
}
