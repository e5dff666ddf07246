package queries

import (
	"context"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/infra"
	"slot-reservation/internal/usecase/shared"
)

// ResolveIn finds the resource with id in the hinted namespace. Without a
// hint it probes parking first, then EV. Callers should always pass a hint;
// the probe exists for clients that predate typed ids.
func ResolveIn(ctx context.Context, repo shared.ResourceRepository, hint resource.Type, id int64) (*resource.Resource, error) {
	if hint != "" {
		res, err := repo.Get(ctx, resource.NewKey(hint, id))
		return res, shared.TranslateNotFound(err, shared.ErrResourceNotFound)
	}

	for _, t := range resource.Types {
		res, err := repo.Get(ctx, resource.NewKey(t, id))
		if err == nil {
			return res, nil
		}
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, err
		}
	}
	return nil, shared.ErrResourceNotFound
}

type PlaceQueries interface {
	Resolve(ctx context.Context, hint resource.Type, id int64) (*FavoriteView, error)
}

type placeQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewPlaceQueries(uow shared.UnitOfWork) PlaceQueries {
	return &placeQueriesImpl{uow: uow}
}

func (q *placeQueriesImpl) Resolve(ctx context.Context, hint resource.Type, id int64) (*FavoriteView, error) {
	var view *FavoriteView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := ResolveIn(ctx, tx.Resources(), hint, id)
		if err != nil {
			return err
		}
		view = &FavoriteView{PlaceType: res.Type(), ResourceView: NewResourceView(res)}
		return nil
	})
	return view, err
}
