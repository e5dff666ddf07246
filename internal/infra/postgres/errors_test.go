//go:build unit

package postgres

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/infra"
	"slot-reservation/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want infra.RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: infra.KindNotFound},
		{name: "second active reservation on a slot", err: &pgconn.PgError{Code: "23505", ConstraintName: constraintOneActivePerSlot}, want: infra.KindConflict},
		{name: "other unique violation", err: &pgconn.PgError{Code: "23505", ConstraintName: "resources_pkey"}, want: infra.KindDuplicateKey},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, want: infra.KindForeignKeyViolated},
		{name: "available count out of range", err: &pgconn.PgError{Code: "23514", ConstraintName: constraintAvailableInRange}, want: infra.KindConflict},
		{name: "other check", err: &pgconn.PgError{Code: "23514", ConstraintName: "reservations_window_ordered"}, want: infra.KindDBFailure},
		{name: "plain error", err: errors.New("connection reset"), want: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classify(tc.err))
		})
	}
}

func TestWrapKeepsDriverErrorForRetry(t *testing.T) {
	tx := &pgTx{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	deadlock := &pgconn.PgError{Code: pgErrCodeDeadlockDetected}

	err := tx.wrap("failed to mark slot", deadlock)

	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	assert.True(t, isRetryableError(err))
	assert.True(t, shouldRetry(err, 0, 3))
	assert.False(t, shouldRetry(err, 3, 3))
	assert.False(t, isRetryableError(errors.New("boom")))
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := range 3 {
		got := calculateBackoff(attempt, base)
		floor := time.Duration(1<<attempt) * base
		assert.GreaterOrEqual(t, got, floor)
		assert.Less(t, got, floor+floor/5+time.Nanosecond)
	}
}

func TestParseStoredEnums(t *testing.T) {
	status, err := parseStatus("cancelled")
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusCancelled, status)

	state, err := parseSlotState("occupied")
	require.NoError(t, err)
	assert.Equal(t, slot.StateOccupied, state)

	_, err = parseStatus("expired")
	assert.ErrorIs(t, err, errUnknownEnumValue)
	assert.Equal(t, errs.ErrInvariantViolation, errs.Category(err))

	_, err = parseSlotState("reserved")
	assert.ErrorIs(t, err, errUnknownEnumValue)
	assert.Equal(t, errs.ErrInvariantViolation, errs.Category(err))
}
