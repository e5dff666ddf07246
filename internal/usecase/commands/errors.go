package commands

import (
	"slot-reservation/internal/pkg/errs"
)

var (
	ErrSlotOccupied          = errs.Define("slot already reserved", errs.ErrConflict)
	ErrResourceNotOwned      = errs.Define("resource belongs to another owner", errs.ErrPermission)
	ErrReservationNotOwned   = errs.Define("reservation belongs to another owner", errs.ErrPermission)
	ErrAvailabilityUnderflow = errs.Define("available count is already zero", errs.ErrInvariantViolation)
)

// Invariant names used in logs and the invariant_violations_total metric.
const (
	InvariantAvailableBelowZero  = "available_below_zero"
	InvariantAvailableAboveTotal = "available_above_total"
	InvariantSlotAlreadyFree     = "slot_already_free"
	InvariantAvailableDrift      = "available_drift"
	InvariantOccupancyMismatch   = "occupancy_mismatch"
)
