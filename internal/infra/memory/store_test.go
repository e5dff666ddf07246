//go:build unit

package memory_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"slot-reservation/internal/domain/favorite"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/infra"
	"slot-reservation/internal/infra/memory"
	"slot-reservation/internal/pkg/ptr"
	"slot-reservation/internal/usecase/shared"
	"slot-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *StoreSuite) seed(b *builder.ResourceBuilder) *resource.Resource {
	res, err := b.BuildDomain()
	s.Require().NoError(err)
	err = s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Resources().Create(ctx, res); err != nil {
			return err
		}
		return tx.Slots().Init(ctx, res.Key(), res.Geometry().Total())
	})
	s.Require().NoError(err)
	return res
}

func (s *StoreSuite) TestRollbackOnError() {
	res := s.seed(builder.NewResourceBuilder())
	key := slot.NewKey(res.Key(), 3)
	boom := errors.New("boom")

	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		s.Require().NoError(tx.Slots().MarkOccupied(ctx, key))
		applied, err := tx.Resources().AdjustAvailable(ctx, res.Key(), -1)
		s.Require().NoError(err)
		s.Require().True(applied)
		return boom
	})
	s.Require().ErrorIs(err, boom)

	err = s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		state, err := tx.Slots().State(ctx, key)
		s.Require().NoError(err)
		s.Equal(slot.StateFree, state)

		got, err := tx.Resources().Get(ctx, res.Key())
		s.Require().NoError(err)
		s.Equal(12, got.Available())
		return nil
	})
	s.Require().NoError(err)
}

func (s *StoreSuite) TestRollbackOnPanic() {
	res := s.seed(builder.NewResourceBuilder())

	s.Panics(func() {
		_ = s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			_ = tx.Resources().Delete(ctx, res.Key())
			panic("boom")
		})
	})

	err := s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Resources().Get(ctx, res.Key())
		return err
	})
	s.NoError(err)
}

func (s *StoreSuite) TestSlotTransitions() {
	res := s.seed(builder.NewResourceBuilder())
	key := slot.NewKey(res.Key(), 0)

	s.Run("occupied twice conflicts", func() {
		err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			s.Require().NoError(tx.Slots().MarkOccupied(ctx, key))
			return tx.Slots().MarkOccupied(ctx, key)
		})
		s.True(infra.IsKind(err, infra.KindConflict))
	})

	s.Run("free slot cannot be freed", func() {
		err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Slots().MarkFree(ctx, key)
		})
		s.True(infra.IsKind(err, infra.KindConflict))
	})

	s.Run("out of range index", func() {
		err := s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Slots().State(ctx, slot.NewKey(res.Key(), 12))
			return err
		})
		s.True(infra.IsKind(err, infra.KindNotFound))
	})

	s.Run("types do not share slots", func() {
		err := s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Slots().State(ctx, slot.NewKey(resource.NewKey(resource.TypeEV, res.ID()), 0))
			return err
		})
		s.True(infra.IsKind(err, infra.KindNotFound))
	})
}

func (s *StoreSuite) TestAdjustAvailableStaysInBounds() {
	res := s.seed(builder.NewResourceBuilder().WithGeometry(1, 1, 1))

	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		applied, err := tx.Resources().AdjustAvailable(ctx, res.Key(), 1)
		s.Require().NoError(err)
		s.False(applied, "cannot exceed total")

		applied, err = tx.Resources().AdjustAvailable(ctx, res.Key(), -1)
		s.Require().NoError(err)
		s.True(applied)

		applied, err = tx.Resources().AdjustAvailable(ctx, res.Key(), -1)
		s.Require().NoError(err)
		s.False(applied, "cannot go below zero")
		return nil
	})
	s.Require().NoError(err)
}

func (s *StoreSuite) TestReadOnlyRejectsWrites() {
	res := s.seed(builder.NewResourceBuilder())

	err := s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().MarkOccupied(ctx, slot.NewKey(res.Key(), 0))
	})
	s.True(infra.IsKind(err, infra.KindDBFailure))
}

func (s *StoreSuite) TestList() {
	owner := uuid.New()
	for id := int64(1); id <= 5; id++ {
		b := builder.NewResourceBuilder().WithID(id)
		if id%2 == 0 {
			b.WithOwnerID(owner).WithEVCharging(true)
		}
		s.seed(b)
	}
	s.seed(builder.NewResourceBuilder().AsEV().WithID(1))

	err := s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		page, total, err := tx.Resources().List(ctx, shared.ResourceFilter{Type: resource.TypeParking, Limit: 2, Offset: 2})
		s.Require().NoError(err)
		s.Equal(5, total)
		s.Require().Len(page, 2)
		s.Equal(int64(3), page[0].ID())
		s.Equal(int64(4), page[1].ID())

		mine, total, err := tx.Resources().List(ctx, shared.ResourceFilter{Type: resource.TypeParking, OwnerID: &owner})
		s.Require().NoError(err)
		s.Equal(2, total)
		s.Len(mine, 2)

		charging, _, err := tx.Resources().List(ctx, shared.ResourceFilter{Type: resource.TypeParking, EVCharging: ptr.Of(true), MinAvailable: ptr.Of(12)})
		s.Require().NoError(err)
		s.Len(charging, 2)

		ev, total, err := tx.Resources().List(ctx, shared.ResourceFilter{Type: resource.TypeEV})
		s.Require().NoError(err)
		s.Equal(1, total)
		s.Equal(resource.TypeEV, ev[0].Type())

		keys, err := tx.Resources().Keys(ctx)
		s.Require().NoError(err)
		s.Len(keys, 6)
		s.Equal(resource.NewKey(resource.TypeEV, 1), keys[0])
		return nil
	})
	s.Require().NoError(err)
}

func (s *StoreSuite) TestActiveReservationPerSlot() {
	res := s.seed(builder.NewResourceBuilder())
	first := builder.NewReservationBuilder().WithResource(res.Key()).WithID(1).BuildDomain()
	second := builder.NewReservationBuilder().WithResource(res.Key()).WithID(2).BuildDomain()

	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		s.Require().NoError(tx.Reservations().Create(ctx, first))
		return tx.Reservations().Create(ctx, second)
	})
	s.True(infra.IsKind(err, infra.KindConflict))

	err = s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		s.Require().NoError(tx.Reservations().Create(ctx, first))
		changed, err := tx.Reservations().Cancel(ctx, 1, time.Now())
		s.Require().NoError(err)
		s.True(changed)

		changed, err = tx.Reservations().Cancel(ctx, 1, time.Now())
		s.Require().NoError(err)
		s.False(changed)

		return tx.Reservations().Create(ctx, second)
	})
	s.NoError(err)
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
	owner := uuid.New()
	now := time.Now()

	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repo := tx.Favorites()
		require.NoError(t, repo.Add(ctx, favorite.New(owner, resource.NewKey(resource.TypeParking, 7), now)))
		require.NoError(t, repo.Add(ctx, favorite.New(owner, resource.NewKey(resource.TypeEV, 7), now)))
		require.NoError(t, repo.Add(ctx, favorite.New(owner, resource.NewKey(resource.TypeParking, 7), now)))

		list, err := repo.ListByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, list, 2, "adding twice is a no-op")

		removed, err := repo.Remove(ctx, owner, 7, resource.TypeEV)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		removed, err = repo.Remove(ctx, owner, 7, "")
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		return nil
	})
	require.NoError(t, err)
}
