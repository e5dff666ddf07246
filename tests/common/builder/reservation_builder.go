//go:build unit || e2e

package builder

import (
	"time"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"
	reqdto "slot-reservation/internal/handler/dto/request"
	"slot-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationBuilder struct {
	ID          int64
	OwnerID     uuid.UUID
	ResourceKey resource.Key
	Index       int
	StartTime   time.Time
	EndTime     time.Time
	TotalPrice  decimal.NullDecimal
	CreatedAt   time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ID:          1,
		OwnerID:     uuid.New(),
		ResourceKey: resource.NewKey(resource.TypeParking, 1),
		Index:       5,
		StartTime:   start,
		EndTime:     start.Add(2 * time.Hour),
		TotalPrice:  decimal.NewNullDecimal(decimal.NewFromInt(2000)),
		CreatedAt:   start.Add(-time.Hour),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) SlotKey() slot.Key {
	return slot.NewKey(b.ResourceKey, b.Index)
}

func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	return reservation.Reconstruct(reservation.Snapshot{
		ID:         b.ID,
		OwnerID:    b.OwnerID,
		Slot:       b.SlotKey(),
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     reservation.StatusActive,
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt,
	})
}

// BuildView denormalizes against res, which may be nil for a deleted resource.
func (b *ReservationBuilder) BuildView(res *resource.Resource) *queries.ReservationView {
	return queries.NewReservationView(b.BuildDomain(), res)
}

func (b *ReservationBuilder) BuildCreateRequest() reqdto.CreateReservationRequest {
	index := b.Index
	return reqdto.CreateReservationRequest{
		ResourceType: b.ResourceKey.Type.String(),
		ResourceID:   b.ResourceKey.ID,
		SlotIndex:    &index,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithID(id int64) *ReservationBuilder {
	b.ID = id
	return b
}

func (b *ReservationBuilder) WithOwnerID(ownerID uuid.UUID) *ReservationBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *ReservationBuilder) WithResource(key resource.Key) *ReservationBuilder {
	b.ResourceKey = key
	return b
}

func (b *ReservationBuilder) WithIndex(index int) *ReservationBuilder {
	b.Index = index
	return b
}

func (b *ReservationBuilder) WithWindow(start, end time.Time) *ReservationBuilder {
	b.StartTime, b.EndTime = start, end
	return b
}
