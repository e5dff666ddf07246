//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/usecase/commands"
	"slot-reservation/internal/usecase/queries"
	"slot-reservation/internal/usecase/shared"
	"slot-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type LedgerSuite struct {
	engineSuite
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) TestReserveAndCancelRoundTrip() {
	owner := uuid.New()
	key := s.createResource(builder.NewResourceBuilder().WithGeometry(4, 3, 12))
	s.Equal(12, s.available(key))

	created, err := s.reserve(owner, key, 5)
	s.Require().NoError(err)
	s.Equal(reservation.StatusActive, created.Status)
	s.Equal(5, created.SlotIndex)
	s.Equal("Central Parking", created.ResourceName)
	s.Equal("2000.00", created.TotalPrice.Decimal.StringFixed(2))

	s.Equal(11, s.available(key))
	s.Equal(11, s.storedAvailable(key))

	state, err := s.catalogQ.SlotState(s.ctx, slot.NewKey(key, 5))
	s.Require().NoError(err)
	s.Equal(slot.StateOccupied, state.State)

	detail, err := s.catalogQ.GetDetail(s.ctx, key)
	s.Require().NoError(err)
	s.Equal(queries.SlotCellView{ID: 5, Row: 1, Col: 2, Taken: true, Free: false}, detail.Slots[5])
	s.Equal(queries.AvailabilityView{Available: 11, Occupied: 1, Total: 12}, detail.Availability)

	cancelled, err := s.ledger.CancelReservation(s.ctx, owner, created.ID)
	s.Require().NoError(err)
	s.True(cancelled.Changed)
	s.Equal(reservation.StatusCancelled, cancelled.Reservation.Status)
	s.Require().NotNil(cancelled.Reservation.CancelledAt)

	s.Equal(12, s.available(key))
	s.Equal(12, s.storedAvailable(key))
	state, err = s.catalogQ.SlotState(s.ctx, slot.NewKey(key, 5))
	s.Require().NoError(err)
	s.Equal(slot.StateFree, state.State)

	s.Equal(1, s.metrics.created)
	s.Equal(1, s.metrics.cancelled)
	s.Empty(s.metrics.violations)
}

func (s *LedgerSuite) TestOccupiedSlotConflicts() {
	key := s.createResource(builder.NewResourceBuilder())
	first, err := s.reserve(uuid.New(), key, 0)
	s.Require().NoError(err)

	_, err = s.reserve(uuid.New(), key, 0)
	s.Require().ErrorIs(err, commands.ErrSlotOccupied)
	s.True(errs.Is(err, errs.ErrConflict))
	s.Equal(11, s.available(key))
	s.Equal(11, s.storedAvailable(key))
	s.Equal(1, s.metrics.conflicts)

	mine, err := s.reservationQ.ListByOwner(s.ctx, first.OwnerID)
	s.Require().NoError(err)
	s.Len(mine, 1)
}

func (s *LedgerSuite) TestConcurrentReservationsForOneSlot() {
	key := s.createResource(builder.NewResourceBuilder())

	const attempts = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.reserve(uuid.New(), key, 7)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errs.Is(err, commands.ErrSlotOccupied):
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, succeeded)
	s.Equal(attempts-1, conflicts)
	s.Equal(11, s.available(key))
	s.Equal(11, s.storedAvailable(key))
}

func (s *LedgerSuite) TestConcurrentReservationsForDistinctSlots() {
	key := s.createResource(builder.NewResourceBuilder())

	var wg sync.WaitGroup
	for i := range 12 {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			_, err := s.reserve(uuid.New(), key, index)
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	s.Equal(0, s.available(key))
	s.Equal(0, s.storedAvailable(key))
}

func (s *LedgerSuite) TestCancelIsIdempotent() {
	owner := uuid.New()
	key := s.createResource(builder.NewResourceBuilder())
	created, err := s.reserve(owner, key, 3)
	s.Require().NoError(err)

	first, err := s.ledger.CancelReservation(s.ctx, owner, created.ID)
	s.Require().NoError(err)
	s.True(first.Changed)

	s.clock.Add(time.Hour)
	second, err := s.ledger.CancelReservation(s.ctx, owner, created.ID)
	s.Require().NoError(err)
	s.False(second.Changed)
	s.Equal(reservation.StatusCancelled, second.Reservation.Status)
	s.Equal(*first.Reservation.CancelledAt, *second.Reservation.CancelledAt)

	s.Equal(12, s.storedAvailable(key))
	s.Equal(1, s.metrics.cancelled)
	s.Empty(s.metrics.violations)
}

func (s *LedgerSuite) TestResourceTypesDoNotShareSlots() {
	parking := s.createResource(builder.NewResourceBuilder())
	ev := s.createResource(builder.NewResourceBuilder().AsEV())
	s.Require().Equal(parking.ID, ev.ID, "both namespaces start at the same id")

	_, err := s.reserve(uuid.New(), parking, 0)
	s.Require().NoError(err)

	state, err := s.catalogQ.SlotState(s.ctx, slot.NewKey(ev, 0))
	s.Require().NoError(err)
	s.Equal(slot.StateFree, state.State)
	s.Equal(4, s.available(ev))

	_, err = s.reserve(uuid.New(), ev, 0)
	s.Require().NoError(err)
	s.Equal(11, s.available(parking))
	s.Equal(3, s.available(ev))
}

func (s *LedgerSuite) TestRejectedRequestsHaveNoSideEffects() {
	key := s.createResource(builder.NewResourceBuilder())

	cases := []struct {
		name  string
		req   commands.CreateReservationRequest
		errIs error
		class error
	}{
		{
			name:  "unknown resource",
			req:   commands.CreateReservationRequest{Resource: resource.NewKey(resource.TypeParking, 99), SlotIndex: 0, StartTime: t0, EndTime: t0.Add(time.Hour)},
			errIs: shared.ErrResourceNotFound,
			class: errs.ErrNotFound,
		},
		{
			name:  "same id in the other namespace",
			req:   commands.CreateReservationRequest{Resource: resource.NewKey(resource.TypeEV, key.ID), SlotIndex: 0, StartTime: t0, EndTime: t0.Add(time.Hour)},
			errIs: shared.ErrResourceNotFound,
			class: errs.ErrNotFound,
		},
		{
			name:  "index past the end",
			req:   commands.CreateReservationRequest{Resource: key, SlotIndex: 12, StartTime: t0, EndTime: t0.Add(time.Hour)},
			errIs: reservation.ErrInvalidSlotIndex,
			class: errs.ErrValidation,
		},
		{
			name:  "negative index",
			req:   commands.CreateReservationRequest{Resource: key, SlotIndex: -1, StartTime: t0, EndTime: t0.Add(time.Hour)},
			errIs: reservation.ErrInvalidSlotIndex,
			class: errs.ErrValidation,
		},
		{
			name:  "inverted window",
			req:   commands.CreateReservationRequest{Resource: key, SlotIndex: 0, StartTime: t0, EndTime: t0.Add(-time.Hour)},
			errIs: reservation.ErrInvalidTimeSlot,
			class: errs.ErrValidation,
		},
	}
	for _, c := range cases {
		s.Run(c.name, func() {
			c.req.OwnerID = uuid.New()
			_, err := s.ledger.CreateReservation(s.ctx, c.req)
			s.Require().ErrorIs(err, c.errIs)
			s.True(errs.Is(err, c.class))
			s.Equal(12, s.available(key))
			s.Equal(12, s.storedAvailable(key))
		})
	}
}

func (s *LedgerSuite) TestCancelChecks() {
	owner := uuid.New()
	key := s.createResource(builder.NewResourceBuilder())
	created, err := s.reserve(owner, key, 1)
	s.Require().NoError(err)

	s.Run("unknown reservation", func() {
		_, err := s.ledger.CancelReservation(s.ctx, owner, 999)
		s.Require().ErrorIs(err, shared.ErrReservationNotFound)
	})

	s.Run("another owner", func() {
		_, err := s.ledger.CancelReservation(s.ctx, uuid.New(), created.ID)
		s.Require().ErrorIs(err, commands.ErrReservationNotOwned)
		s.True(errs.Is(err, errs.ErrPermission))
		s.Equal(11, s.available(key))
	})
}

func (s *LedgerSuite) TestDecrementAtZeroIsAnInvariantViolation() {
	key := s.createResource(builder.NewResourceBuilder())
	s.setStoredAvailable(key, 0)

	_, err := s.reserve(uuid.New(), key, 2)
	s.Require().ErrorIs(err, commands.ErrAvailabilityUnderflow)
	s.True(errs.Is(err, errs.ErrInvariantViolation))
	s.Equal([]string{commands.InvariantAvailableBelowZero}, s.metrics.violations)

	state, err := s.catalogQ.SlotState(s.ctx, slot.NewKey(key, 2))
	s.Require().NoError(err)
	s.Equal(slot.StateFree, state.State, "slot flip rolled back")
}

func (s *LedgerSuite) TestIncrementClampsAtTotal() {
	owner := uuid.New()
	key := s.createResource(builder.NewResourceBuilder())
	created, err := s.reserve(owner, key, 2)
	s.Require().NoError(err)
	s.setStoredAvailable(key, 12)

	result, err := s.ledger.CancelReservation(s.ctx, owner, created.ID)
	s.Require().NoError(err)
	s.True(result.Changed)
	s.Equal(12, s.storedAvailable(key))
	s.Equal([]string{commands.InvariantAvailableAboveTotal}, s.metrics.violations)
}

func (s *LedgerSuite) TestCancelWithSlotAlreadyFree() {
	owner := uuid.New()
	key := s.createResource(builder.NewResourceBuilder())
	created, err := s.reserve(owner, key, 4)
	s.Require().NoError(err)

	err = s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().MarkFree(ctx, slot.NewKey(key, 4))
	})
	s.Require().NoError(err)

	result, err := s.ledger.CancelReservation(s.ctx, owner, created.ID)
	s.Require().NoError(err)
	s.True(result.Changed)
	s.Equal(11, s.storedAvailable(key), "count is left for the reconciler")
	s.Equal([]string{commands.InvariantSlotAlreadyFree}, s.metrics.violations)
}

func (s *LedgerSuite) TestOwnerListingIsNewestFirst() {
	owner := uuid.New()
	key := s.createResource(builder.NewResourceBuilder())
	other := s.createResource(builder.NewResourceBuilder().WithName("Second Lot"))

	for i, target := range []resource.Key{key, other, key} {
		s.clock.Add(time.Minute)
		_, err := s.reserve(owner, target, i)
		s.Require().NoError(err)
	}
	_, err := s.reserve(uuid.New(), key, 10)
	s.Require().NoError(err)

	list, err := s.reservationQ.ListByOwner(s.ctx, owner)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Greater(list[0].ID, list[1].ID)
	s.Greater(list[1].ID, list[2].ID)
	s.Equal("Second Lot", list[1].ResourceName)
	s.Equal(2, list[0].SlotIndex)
}
