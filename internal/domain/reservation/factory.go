package reservation

import (
	"time"

	"github.com/google/uuid"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/pkg/clock"
	"slot-reservation/internal/pkg/errs"
)

var ErrInvalidSlotIndex = errs.Define("slot index is out of range for the resource", errs.ErrValidation)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// Validate checks a reservation request against the resource geometry and
// returns the parsed time window.
func (f *Factory) Validate(res *resource.Resource, index int, start, end time.Time) (TimeSlot, error) {
	if !res.Geometry().Contains(index) {
		return TimeSlot{}, errs.Wrapf(ErrInvalidSlotIndex, "index %d not in [0,%d)", index, res.Geometry().Total())
	}
	return NewTimeSlot(start, end)
}

func (f *Factory) CreateReservation(id int64, res *resource.Resource, ownerID uuid.UUID, index int, ts TimeSlot) *Reservation {
	return NewReservation(
		id,
		ownerID,
		slot.NewKey(res.Key(), index),
		ts,
		f.PriceCalculator.Quote(res, ts),
		f.Clock.Now(),
	)
}
