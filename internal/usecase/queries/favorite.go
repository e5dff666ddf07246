package queries

import (
	"context"

	"slot-reservation/internal/infra"
	"slot-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type FavoriteQueries interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]*FavoriteView, error)
}

type favoriteQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewFavoriteQueries(uow shared.UnitOfWork) FavoriteQueries {
	return &favoriteQueriesImpl{uow: uow}
}

// List merges both namespaces into one type-tagged list. Favorites whose
// resource has been deleted are skipped.
func (q *favoriteQueriesImpl) List(ctx context.Context, ownerID uuid.UUID) ([]*FavoriteView, error) {
	views := []*FavoriteView{}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		favs, err := tx.Favorites().ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		for _, f := range favs {
			res, err := tx.Resources().Get(ctx, f.Resource())
			if infra.IsKind(err, infra.KindNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			views = append(views, &FavoriteView{PlaceType: res.Type(), ResourceView: NewResourceView(res)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
