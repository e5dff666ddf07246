//go:build unit

package commands_test

import (
	"strings"
	"testing"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/pkg/catalogfile"
	"slot-reservation/internal/usecase/commands"
	"slot-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type SeedSuite struct {
	engineSuite
}

func TestSeedSuite(t *testing.T) {
	suite.Run(t, new(SeedSuite))
}

func (s *SeedSuite) TestSeedCreatesThroughCatalog() {
	items, err := catalogfile.Parse(strings.NewReader(`
[[parking]]
name = "Central Parking"
address = "1 Main Street"

[[ev]]
name = "Riverside Chargers"
address = "9 River Road"
`))
	s.Require().NoError(err)
	owner := uuid.New()

	n, err := commands.SeedCatalog(s.ctx, s.catalog, owner, items)
	s.Require().NoError(err)
	s.Equal(2, n)

	parking, err := s.catalogQ.GetDetail(s.ctx, resource.NewKey(resource.TypeParking, 1))
	s.Require().NoError(err)
	s.Equal(owner, parking.OwnerID)
	s.Equal(queries.AvailabilityView{Available: 12, Occupied: 0, Total: 12}, parking.Availability)

	ev, err := s.catalogQ.Get(s.ctx, resource.NewKey(resource.TypeEV, 1))
	s.Require().NoError(err)
	s.Equal(4, ev.TotalSlots)
	s.Equal("200", ev.UnitPrice.String())
}

func (s *SeedSuite) TestSeedStopsAtFirstInvalidItem() {
	items := []catalogfile.Item{
		{Type: resource.TypeParking, Descriptor: resource.Descriptor{Name: "A", Address: "a"}},
		{Type: resource.TypeParking, Descriptor: resource.Descriptor{Name: "", Address: "b"}},
		{Type: resource.TypeParking, Descriptor: resource.Descriptor{Name: "C", Address: "c"}},
	}

	n, err := commands.SeedCatalog(s.ctx, s.catalog, uuid.New(), items)
	s.Require().ErrorIs(err, resource.ErrEmptyName)
	s.Equal(1, n)

	page, err := s.catalogQ.List(s.ctx, queries.ListResourcesParams{Type: resource.TypeParking})
	s.Require().NoError(err)
	s.Equal(1, page.Count)
}
