package shared

import (
	"context"
	"time"

	"slot-reservation/internal/domain/favorite"
	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: every write made through tx commits together or not at all
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent snapshot for multi-repository reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Resources() ResourceRepository
	Slots() SlotRepository
	Reservations() ReservationRepository
	Favorites() FavoriteRepository
}

type ResourceFilter struct {
	Type         resource.Type
	OwnerID      *uuid.UUID
	MinAvailable *int
	EVCharging   *bool
	Limit        int
	Offset       int
}

type ResourceRepository interface {
	Create(ctx context.Context, res *resource.Resource) error
	Get(ctx context.Context, key resource.Key) (*resource.Resource, error)
	// GetForUpdate also serializes later writers on the same resource until
	// the surrounding transaction ends.
	GetForUpdate(ctx context.Context, key resource.Key) (*resource.Resource, error)
	Update(ctx context.Context, res *resource.Resource) error
	Delete(ctx context.Context, key resource.Key) error
	// List returns one page sorted by id plus the total number of matches.
	List(ctx context.Context, filter ResourceFilter) ([]*resource.Resource, int, error)
	// AdjustAvailable applies delta only while the result stays within
	// [0, total_slots] and reports whether it did.
	AdjustAvailable(ctx context.Context, key resource.Key, delta int) (bool, error)
	SetAvailable(ctx context.Context, key resource.Key, n int) error
	Keys(ctx context.Context) ([]resource.Key, error)
}

type SlotRepository interface {
	Init(ctx context.Context, key resource.Key, total int) error
	State(ctx context.Context, key slot.Key) (slot.State, error)
	// MarkOccupied fails with a CONFLICT repository error unless the slot is free.
	MarkOccupied(ctx context.Context, key slot.Key) error
	MarkFree(ctx context.Context, key slot.Key) error
	Occupied(ctx context.Context, key resource.Key) ([]int, error)
	Drop(ctx context.Context, key resource.Key) error
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	Get(ctx context.Context, id int64) (*reservation.Reservation, error)
	// Cancel flips an active reservation and reports whether it did.
	Cancel(ctx context.Context, id int64, at time.Time) (bool, error)
	// ListByOwner returns newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*reservation.Reservation, error)
	ListActiveByResource(ctx context.Context, key resource.Key) ([]*reservation.Reservation, error)
}

type FavoriteRepository interface {
	Add(ctx context.Context, f *favorite.Favorite) error
	// Remove deletes matching favorites; an empty hint matches both namespaces.
	Remove(ctx context.Context, ownerID uuid.UUID, id int64, hint resource.Type) (int, error)
	Clear(ctx context.Context, ownerID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*favorite.Favorite, error)
}
