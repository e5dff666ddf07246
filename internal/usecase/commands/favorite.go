package commands

import (
	"context"

	"slot-reservation/internal/domain/favorite"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/pkg/clock"
	"slot-reservation/internal/usecase/queries"
	"slot-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type FavoriteCommands interface {
	// AddFavorite resolves id (probing both namespaces without a hint) and
	// stores the typed key. Adding the same resource twice is a no-op.
	AddFavorite(ctx context.Context, ownerID uuid.UUID, id int64, hint resource.Type) (*queries.FavoriteView, error)
	// RemoveFavorite reports how many entries were removed; zero is not an error.
	RemoveFavorite(ctx context.Context, ownerID uuid.UUID, id int64, hint resource.Type) (int, error)
	ClearFavorites(ctx context.Context, ownerID uuid.UUID) error
}

type favoriteUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewFavoriteUseCase(uow shared.UnitOfWork, clk clock.Clock) FavoriteCommands {
	return &favoriteUseCaseImpl{uow: uow, clock: clk}
}

func (uc *favoriteUseCaseImpl) AddFavorite(ctx context.Context, ownerID uuid.UUID, id int64, hint resource.Type) (*queries.FavoriteView, error) {
	var view *queries.FavoriteView
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := queries.ResolveIn(ctx, tx.Resources(), hint, id)
		if err != nil {
			return err
		}
		if err := tx.Favorites().Add(ctx, favorite.New(ownerID, res.Key(), uc.clock.Now())); err != nil {
			return err
		}
		view = &queries.FavoriteView{PlaceType: res.Type(), ResourceView: queries.NewResourceView(res)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (uc *favoriteUseCaseImpl) RemoveFavorite(ctx context.Context, ownerID uuid.UUID, id int64, hint resource.Type) (int, error) {
	var removed int
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Favorites().Remove(ctx, ownerID, id, hint)
		removed = n
		return err
	})
	return removed, err
}

func (uc *favoriteUseCaseImpl) ClearFavorites(ctx context.Context, ownerID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Favorites().Clear(ctx, ownerID)
	})
}
