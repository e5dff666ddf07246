package postgres

import (
	"errors"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/infra"
	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

var errUnknownEnumValue = errs.Define("stored value is not a known enum member", errs.ErrInvariantViolation)

// wrap classifies a driver error into a repository error kind.
func (t *pgTx) wrap(msg string, err error) error {
	return infra.WrapRepoErr(t.logger, classify(err), msg, err)
}

func (t *pgTx) fail(kind infra.RepositoryErrorKind, msg string) error {
	return infra.WrapRepoErr(t.logger, kind, msg, nil)
}

func classify(err error) infra.RepositoryErrorKind {
	if pgconv.IsNoRows(err) {
		return infra.KindNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return infra.KindDBFailure
	}
	switch pgErr.Code {
	case pgErrCodeUniqueViolation:
		if pgErr.ConstraintName == constraintOneActivePerSlot {
			return infra.KindConflict
		}
		return infra.KindDuplicateKey
	case pgErrCodeForeignKeyViolation:
		return infra.KindForeignKeyViolated
	case pgErrCodeCheckViolation:
		if pgErr.ConstraintName == constraintAvailableInRange {
			return infra.KindConflict
		}
		return infra.KindDBFailure
	default:
		return infra.KindDBFailure
	}
}

func parseStatus(raw string) (reservation.Status, error) {
	if s := reservation.Status(raw); s.IsValid() {
		return s, nil
	}
	return "", errs.Wrapf(errUnknownEnumValue, "reservation status %q", raw)
}

func parseSlotState(raw string) (slot.State, error) {
	if s := slot.State(raw); s.IsValid() {
		return s, nil
	}
	return "", errs.Wrapf(errUnknownEnumValue, "slot state %q", raw)
}
