package reservation

import (
	"time"

	"slot-reservation/internal/pkg/errs"
)

var ErrInvalidTimeSlot = errs.Define("end time must be after start time", errs.ErrValidation)

// TimeSlot is informational and used for billing only; it never drives
// occupancy. A window in the past is accepted.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, errs.Wrapf(ErrInvalidTimeSlot, "start=%s end=%s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	return TimeSlot{
		start: start,
		end:   end,
	}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}
