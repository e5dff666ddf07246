package shared

import (
	"slot-reservation/internal/infra"
	"slot-reservation/internal/pkg/errs"
)

// Shared by the command and query sides.
var (
	ErrResourceNotFound    = errs.Define("resource not found", errs.ErrNotFound)
	ErrSlotNotFound        = errs.Define("slot not found", errs.ErrNotFound)
	ErrReservationNotFound = errs.Define("reservation not found", errs.ErrNotFound)
)

// TranslateNotFound replaces a NOT_FOUND repository error with target and
// passes every other error through.
func TranslateNotFound(err, target error) error {
	if err != nil && infra.IsKind(err, infra.KindNotFound) {
		return target
	}
	return err
}
