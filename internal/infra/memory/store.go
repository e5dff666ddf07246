// Package memory is a process-local store. One RW mutex guards every map, so
// a write transaction is serialized against all other transactions; failed
// transactions are rolled back by replaying an undo journal.
package memory

import (
	"context"
	"log/slog"
	"sync"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/infra"
	"slot-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

var errReadOnly = infra.NewRepoErr(infra.KindDBFailure, "write attempted in read-only transaction")

type favoriteEntry struct {
	key     resource.Key
	addedAt int64 // unix nanos
}

type Store struct {
	mu sync.RWMutex

	resources    map[resource.Key]resource.Snapshot
	slots        map[resource.Key][]slot.State
	reservations map[int64]reservation.Snapshot
	activeBySlot map[slot.Key]int64
	favorites    map[uuid.UUID][]favoriteEntry

	logger *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		resources:    make(map[resource.Key]resource.Snapshot),
		slots:        make(map[resource.Key][]slot.State),
		reservations: make(map[int64]reservation.Snapshot),
		activeBySlot: make(map[slot.Key]int64),
		favorites:    make(map[uuid.UUID][]favoriteEntry),
		logger:       logger,
	}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s}
	defer func() {
		if p := recover(); p != nil {
			tx.rollback()
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(ctx, &memTx{store: s, readOnly: true})
}

type memTx struct {
	store    *Store
	readOnly bool
	undo     []func()
}

func (t *memTx) Resources() shared.ResourceRepository       { return &resourceRepo{tx: t} }
func (t *memTx) Slots() shared.SlotRepository               { return &slotRepo{tx: t} }
func (t *memTx) Reservations() shared.ReservationRepository { return &reservationRepo{tx: t} }
func (t *memTx) Favorites() shared.FavoriteRepository       { return &favoriteRepo{tx: t} }

// write registers the inverse of a mutation the caller is about to make.
func (t *memTx) write(inverse func()) error {
	if t.readOnly {
		return errReadOnly
	}
	t.undo = append(t.undo, inverse)
	return nil
}

func (t *memTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *memTx) fail(kind infra.RepositoryErrorKind, msg string) error {
	return infra.WrapRepoErr(t.store.logger, kind, msg, nil)
}
