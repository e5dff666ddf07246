//go:build unit

package commands_test

import (
	"testing"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/pkg/ptr"
	"slot-reservation/internal/usecase/commands"
	"slot-reservation/internal/usecase/queries"
	"slot-reservation/internal/usecase/shared"
	"slot-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CatalogSuite struct {
	engineSuite
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) TestCreateStartsFullyAvailable() {
	b := builder.NewResourceBuilder().WithGeometry(2, 5, 9)
	key := s.createResource(b)

	detail, err := s.catalogQ.GetDetail(s.ctx, key)
	s.Require().NoError(err)
	s.Equal(9, detail.TotalSlots)
	s.Equal(9, detail.AvailableCount)
	s.Equal(queries.AvailabilityView{Available: 9, Occupied: 0, Total: 9}, detail.Availability)
	s.Len(detail.Slots, 9)
	s.Equal(queries.SlotCellView{ID: 8, Row: 1, Col: 3, Free: true}, detail.Slots[8])
}

func (s *CatalogSuite) TestCreateRejectsInvalidInput() {
	cases := []struct {
		name  string
		b     *builder.ResourceBuilder
		errIs error
	}{
		{name: "empty name", b: builder.NewResourceBuilder().WithName(""), errIs: resource.ErrEmptyName},
		{name: "empty address", b: builder.NewResourceBuilder().WithAddress(""), errIs: resource.ErrEmptyAddress},
		{name: "grid too small", b: builder.NewResourceBuilder().WithGeometry(2, 2, 5), errIs: resource.ErrInvalidGeometry},
		{name: "unknown type", b: builder.NewResourceBuilder().WithType("bike"), errIs: resource.ErrInvalidType},
	}
	for _, c := range cases {
		s.Run(c.name, func() {
			_, err := s.catalog.CreateResource(s.ctx, c.b.Type, c.b.OwnerID, c.b.BuildDescriptor())
			s.Require().ErrorIs(err, c.errIs)
			s.True(errs.Is(err, errs.ErrValidation))
		})
	}

	// rejected requests do not consume ids
	key := s.createResource(builder.NewResourceBuilder())
	s.Equal(int64(1), key.ID)
}

func (s *CatalogSuite) TestUpdate() {
	b := builder.NewResourceBuilder()
	key := s.createResource(b)
	_, err := s.reserve(uuid.New(), key, 0)
	s.Require().NoError(err)

	s.Run("descriptive fields", func() {
		view, err := s.catalog.UpdateResource(s.ctx, key, b.OwnerID, resource.Patch{
			Name:       ptr.Of("Harbor Parking"),
			EVCharging: ptr.Of(true),
		})
		s.Require().NoError(err)
		s.Equal("Harbor Parking", view.Name)
		s.True(view.EVCharging)
		s.Equal(11, view.AvailableCount)
	})

	s.Run("availability is not writable", func() {
		_, err := s.catalog.UpdateResource(s.ctx, key, b.OwnerID, resource.Patch{AvailableCount: ptr.Of(12)})
		s.Require().ErrorIs(err, resource.ErrDerivedAvailability)
		s.Equal(11, s.storedAvailable(key))
	})

	s.Run("total slots are fixed", func() {
		_, err := s.catalog.UpdateResource(s.ctx, key, b.OwnerID, resource.Patch{TotalSlots: ptr.Of(20)})
		s.Require().ErrorIs(err, resource.ErrImmutableTotalSlots)
	})

	s.Run("another owner", func() {
		_, err := s.catalog.UpdateResource(s.ctx, key, uuid.New(), resource.Patch{Name: ptr.Of("Mine now")})
		s.Require().ErrorIs(err, commands.ErrResourceNotOwned)
		view, err := s.catalogQ.Get(s.ctx, key)
		s.Require().NoError(err)
		s.Equal("Harbor Parking", view.Name)
	})

	s.Run("unknown resource", func() {
		_, err := s.catalog.UpdateResource(s.ctx, resource.NewKey(resource.TypeEV, key.ID), b.OwnerID, resource.Patch{})
		s.Require().ErrorIs(err, shared.ErrResourceNotFound)
	})
}

func (s *CatalogSuite) TestDeleteCascadesToActiveReservations() {
	b := builder.NewResourceBuilder()
	key := s.createResource(b)
	guest := uuid.New()

	kept, err := s.reserve(guest, key, 1)
	s.Require().NoError(err)
	done, err := s.reserve(guest, key, 2)
	s.Require().NoError(err)
	_, err = s.ledger.CancelReservation(s.ctx, guest, done.ID)
	s.Require().NoError(err)

	_, err = s.catalog.DeleteResource(s.ctx, key, uuid.New())
	s.Require().ErrorIs(err, commands.ErrResourceNotOwned)

	result, err := s.catalog.DeleteResource(s.ctx, key, b.OwnerID)
	s.Require().NoError(err)
	s.Equal(1, result.CancelledReservations)

	_, err = s.catalogQ.Get(s.ctx, key)
	s.Require().ErrorIs(err, shared.ErrResourceNotFound)
	_, err = s.catalogQ.SlotState(s.ctx, slot.NewKey(key, 1))
	s.Require().ErrorIs(err, shared.ErrResourceNotFound)

	history, err := s.reservationQ.ListByOwner(s.ctx, guest)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	for _, r := range history {
		s.Equal(reservation.StatusCancelled, r.Status)
		s.Equal(queries.DeletedResourceName, r.ResourceName)
		s.Empty(r.ResourceAddress)
	}

	// cancelling after the resource is gone is a no-op, not an error
	again, err := s.ledger.CancelReservation(s.ctx, guest, kept.ID)
	s.Require().NoError(err)
	s.False(again.Changed)

	_, err = s.reserve(guest, key, 1)
	s.Require().ErrorIs(err, shared.ErrResourceNotFound)

	// ids are not reused after a delete
	next := s.createResource(builder.NewResourceBuilder())
	s.Equal(int64(2), next.ID)
}

func (s *CatalogSuite) TestListFiltersAndPaginates() {
	owner := uuid.New()
	for i := range 5 {
		b := builder.NewResourceBuilder().WithEVCharging(i%2 == 0)
		if i < 3 {
			b.WithOwnerID(owner)
		}
		s.createResource(b)
	}
	s.createResource(builder.NewResourceBuilder().AsEV())
	_, err := s.reserve(uuid.New(), resource.NewKey(resource.TypeParking, 1), 0)
	s.Require().NoError(err)

	cases := []struct {
		name    string
		params  queries.ListResourcesParams
		wantIDs []int64
		count   int
	}{
		{
			name:    "defaults",
			params:  queries.ListResourcesParams{Type: resource.TypeParking},
			wantIDs: []int64{1, 2, 3, 4, 5},
			count:   5,
		},
		{
			name:    "second page",
			params:  queries.ListResourcesParams{Type: resource.TypeParking, Page: 2, PerPage: 2},
			wantIDs: []int64{3, 4},
			count:   5,
		},
		{
			name:    "owner",
			params:  queries.ListResourcesParams{Type: resource.TypeParking, OwnerID: &owner},
			wantIDs: []int64{1, 2, 3},
			count:   3,
		},
		{
			name:    "charging",
			params:  queries.ListResourcesParams{Type: resource.TypeParking, EVCharging: ptr.Of(true)},
			wantIDs: []int64{1, 3, 5},
			count:   3,
		},
		{
			name:    "min available",
			params:  queries.ListResourcesParams{Type: resource.TypeParking, MinAvailable: ptr.Of(12)},
			wantIDs: []int64{2, 3, 4, 5},
			count:   4,
		},
		{
			name:    "ev namespace",
			params:  queries.ListResourcesParams{Type: resource.TypeEV},
			wantIDs: []int64{1},
			count:   1,
		},
	}
	for _, c := range cases {
		s.Run(c.name, func() {
			page, err := s.catalogQ.List(s.ctx, c.params)
			s.Require().NoError(err)
			ids := make([]int64, len(page.Items))
			for i, item := range page.Items {
				ids[i] = item.ID
			}
			s.Equal(c.wantIDs, ids)
			s.Equal(c.count, page.Count)
		})
	}

	s.Run("per_page out of range", func() {
		_, err := s.catalogQ.List(s.ctx, queries.ListResourcesParams{Type: resource.TypeParking, PerPage: queries.MaxPerPage + 1})
		s.Require().ErrorIs(err, queries.ErrInvalidPerPage)
	})
	s.Run("negative page", func() {
		_, err := s.catalogQ.List(s.ctx, queries.ListResourcesParams{Type: resource.TypeParking, Page: -1})
		s.Require().ErrorIs(err, queries.ErrInvalidPage)
	})
}
