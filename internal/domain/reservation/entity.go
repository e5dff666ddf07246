package reservation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"slot-reservation/internal/domain/slot"
)

type Reservation struct {
	id          int64
	ownerID     uuid.UUID
	slot        slot.Key
	timeSlot    TimeSlot
	status      Status
	totalPrice  decimal.NullDecimal
	createdAt   time.Time
	cancelledAt *time.Time
}

func NewReservation(id int64, ownerID uuid.UUID, key slot.Key, ts TimeSlot, price decimal.NullDecimal, now time.Time) *Reservation {
	return &Reservation{
		id:         id,
		ownerID:    ownerID,
		slot:       key,
		timeSlot:   ts,
		status:     StatusActive,
		totalPrice: price,
		createdAt:  now,
	}
}

// Cancel moves an active reservation to cancelled. It reports false, and
// changes nothing, when the reservation was already cancelled.
func (r *Reservation) Cancel(at time.Time) bool {
	if !r.IsActive() {
		return false
	}
	r.status = StatusCancelled
	r.cancelledAt = &at
	return true
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

func (r *Reservation) IsOwnedBy(ownerID uuid.UUID) bool {
	return r.ownerID == ownerID
}

func (r *Reservation) ID() int64                       { return r.id }
func (r *Reservation) OwnerID() uuid.UUID              { return r.ownerID }
func (r *Reservation) Slot() slot.Key                  { return r.slot }
func (r *Reservation) TimeSlot() TimeSlot              { return r.timeSlot }
func (r *Reservation) Status() Status                  { return r.status }
func (r *Reservation) TotalPrice() decimal.NullDecimal { return r.totalPrice }
func (r *Reservation) CreatedAt() time.Time            { return r.createdAt }
func (r *Reservation) CancelledAt() *time.Time         { return r.cancelledAt }

// Snapshot is the flat persisted form of a Reservation.
type Snapshot struct {
	ID          int64
	OwnerID     uuid.UUID
	Slot        slot.Key
	StartTime   time.Time
	EndTime     time.Time
	Status      Status
	TotalPrice  decimal.NullDecimal
	CreatedAt   time.Time
	CancelledAt *time.Time
}

func Reconstruct(s Snapshot) *Reservation {
	return &Reservation{
		id:          s.ID,
		ownerID:     s.OwnerID,
		slot:        s.Slot,
		timeSlot:    TimeSlot{start: s.StartTime, end: s.EndTime},
		status:      s.Status,
		totalPrice:  s.TotalPrice,
		createdAt:   s.CreatedAt,
		cancelledAt: s.CancelledAt,
	}
}

func (r *Reservation) Snapshot() Snapshot {
	return Snapshot{
		ID:          r.id,
		OwnerID:     r.ownerID,
		Slot:        r.slot,
		StartTime:   r.timeSlot.start,
		EndTime:     r.timeSlot.end,
		Status:      r.status,
		TotalPrice:  r.totalPrice,
		CreatedAt:   r.createdAt,
		CancelledAt: r.cancelledAt,
	}
}
