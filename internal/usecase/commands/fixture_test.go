//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/infra/memory"
	"slot-reservation/internal/pkg/clock"
	"slot-reservation/internal/pkg/idgen"
	"slot-reservation/internal/pkg/metrics"
	"slot-reservation/internal/usecase/commands"
	"slot-reservation/internal/usecase/queries"
	"slot-reservation/internal/usecase/shared"
	"slot-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var t0 = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

// recorder captures what the usecases report.
type recorder struct {
	metrics.Nop
	mu         sync.Mutex
	violations []string
	conflicts  int
	created    int
	cancelled  int
}

func (r *recorder) InvariantViolation(invariant string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.violations = append(r.violations, invariant)
}

func (r *recorder) ReservationConflict(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts++
}

func (r *recorder) ReservationCreated(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
}

func (r *recorder) ReservationCancelled(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled++
}

type engineSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Store
	clock   *clock.MockClock
	metrics *recorder

	catalog      commands.CatalogCommands
	ledger       commands.ReservationCommands
	favorites    commands.FavoriteCommands
	reconciler   *commands.Reconciler
	catalogQ     queries.CatalogQueries
	reservationQ queries.ReservationQueries
	favoriteQ    queries.FavoriteQueries
}

func (s *engineSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.ctx = context.Background()
	s.store = memory.NewStore(logger)
	s.clock = clock.NewMockClock(t0)
	s.metrics = &recorder{}
	ids := idgen.NewSequence()

	factory := reservation.NewFactory(s.clock, reservation.NewDefaultPriceCalculator())
	s.catalog = commands.NewCatalogUseCase(s.store, ids, s.clock, logger, s.metrics)
	s.ledger = commands.NewReservationUseCase(s.store, ids, factory, commands.NewAggregator(logger, s.metrics), s.clock, logger, s.metrics)
	s.favorites = commands.NewFavoriteUseCase(s.store, s.clock)
	s.reconciler = commands.NewReconciler(s.store, logger, s.metrics)
	s.catalogQ = queries.NewCatalogQueries(s.store)
	s.reservationQ = queries.NewReservationQueries(s.store)
	s.favoriteQ = queries.NewFavoriteQueries(s.store)
}

func (s *engineSuite) createResource(b *builder.ResourceBuilder) resource.Key {
	view, err := s.catalog.CreateResource(s.ctx, b.Type, b.OwnerID, b.BuildDescriptor())
	s.Require().NoError(err)
	return resource.NewKey(view.Type, view.ID)
}

func (s *engineSuite) reserve(owner uuid.UUID, key resource.Key, index int) (*queries.ReservationView, error) {
	return s.ledger.CreateReservation(s.ctx, commands.CreateReservationRequest{
		OwnerID:   owner,
		Resource:  key,
		SlotIndex: index,
		StartTime: t0,
		EndTime:   t0.Add(2 * time.Hour),
	})
}

func (s *engineSuite) available(key resource.Key) int {
	v, err := s.catalogQ.Availability(s.ctx, key)
	s.Require().NoError(err)
	return v.Available
}

// storedAvailable reads the persisted counter rather than the derived value.
func (s *engineSuite) storedAvailable(key resource.Key) int {
	view, err := s.catalogQ.Get(s.ctx, key)
	s.Require().NoError(err)
	return view.AvailableCount
}

func (s *engineSuite) setStoredAvailable(key resource.Key, n int) {
	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().SetAvailable(ctx, key, n)
	})
	s.Require().NoError(err)
}
