package postgres

import (
	"context"
	"strconv"
	"time"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/pkg/pgconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var reservationColumns = []string{
	"id",
	"owner_id",
	"resource_type",
	"resource_id",
	"slot_index",
	"start_time",
	"end_time",
	"status",
	"total_price::text",
	"created_at",
	"cancelled_at",
}

type reservationRepo struct {
	tx *pgTx
}

// Create fails with CONFLICT when the slot already has an active
// reservation (reservations_one_active_per_slot).
func (r *reservationRepo) Create(ctx context.Context, res *reservation.Reservation) error {
	s := res.Snapshot()
	query, args, err := psql.Insert("reservations").
		Columns(
			"id", "owner_id", "resource_type", "resource_id", "slot_index",
			"start_time", "end_time", "status", "total_price", "created_at", "cancelled_at",
		).
		Values(
			s.ID, pgconv.UUIDToPgtype(s.OwnerID), string(s.Slot.Resource.Type), s.Slot.Resource.ID, s.Slot.Index,
			s.StartTime, s.EndTime, string(s.Status),
			sq.Expr("?::text::numeric", pgconv.NullDecimalToText(s.TotalPrice)),
			s.CreatedAt, pgconv.TimePtrToPgtype(s.CancelledAt),
		).
		ToSql()
	if err != nil {
		return r.tx.wrap("build insert reservation", err)
	}
	if _, err := r.tx.db.Exec(ctx, query, args...); err != nil {
		return r.tx.wrap("failed to create reservation on "+s.Slot.String(), err)
	}
	return nil
}

func (r *reservationRepo) Get(ctx context.Context, id int64) (*reservation.Reservation, error) {
	query, args, err := psql.Select(reservationColumns...).From("reservations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, r.tx.wrap("build select reservation", err)
	}
	res, err := scanReservation(r.tx.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, r.tx.wrap("reservation "+strconv.FormatInt(id, 10)+" not loaded", err)
	}
	return res, nil
}

// Cancel only flips ACTIVE rows, so concurrent cancels see exactly one winner.
func (r *reservationRepo) Cancel(ctx context.Context, id int64, at time.Time) (bool, error) {
	query, args, err := psql.Update("reservations").
		Set("status", string(reservation.StatusCancelled)).
		Set("cancelled_at", at).
		Where(sq.Eq{"id": id, "status": string(reservation.StatusActive)}).
		ToSql()
	if err != nil {
		return false, r.tx.wrap("build cancel reservation", err)
	}
	tag, err := r.tx.db.Exec(ctx, query, args...)
	if err != nil {
		return false, r.tx.wrap("failed to cancel reservation "+strconv.FormatInt(id, 10), err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	if _, err := r.Get(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func (r *reservationRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*reservation.Reservation, error) {
	return r.list(ctx, sq.Eq{"owner_id": pgconv.UUIDToPgtype(ownerID)}, "id DESC")
}

func (r *reservationRepo) ListActiveByResource(ctx context.Context, key resource.Key) ([]*reservation.Reservation, error) {
	return r.list(ctx, sq.Eq{
		"resource_type": string(key.Type),
		"resource_id":   key.ID,
		"status":        string(reservation.StatusActive),
	}, "id ASC")
}

func (r *reservationRepo) list(ctx context.Context, where sq.Sqlizer, order string) ([]*reservation.Reservation, error) {
	query, args, err := psql.Select(reservationColumns...).From("reservations").
		Where(where).
		OrderBy(order).
		ToSql()
	if err != nil {
		return nil, r.tx.wrap("build list reservations", err)
	}
	rows, err := r.tx.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.tx.wrap("failed to list reservations", err)
	}
	defer rows.Close()

	var list []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, r.tx.wrap("failed to scan reservation", err)
		}
		list = append(list, res)
	}
	if err := rows.Err(); err != nil {
		return nil, r.tx.wrap("failed to list reservations", err)
	}
	return list, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		s           reservation.Snapshot
		owner       pgtype.UUID
		t, status   string
		resourceID  int64
		index       int
		totalPrice  pgtype.Text
		cancelledAt pgtype.Timestamptz
	)
	err := row.Scan(
		&s.ID, &owner, &t, &resourceID, &index,
		&s.StartTime, &s.EndTime, &status, &totalPrice,
		&s.CreatedAt, &cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	s.OwnerID = pgconv.UUIDFromPgtype(owner)
	s.Slot = slot.NewKey(resource.NewKey(resource.Type(t), resourceID), index)
	if s.Status, err = parseStatus(status); err != nil {
		return nil, err
	}
	s.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	if s.TotalPrice, err = pgconv.NullDecimalFromText(totalPrice); err != nil {
		return nil, err
	}
	return reservation.Reconstruct(s), nil
}
