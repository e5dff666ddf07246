package memory

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"time"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/infra"

	"github.com/google/uuid"
)

type reservationRepo struct {
	tx *memTx
}

func (r *reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	s := r.tx.store
	snap := res.Snapshot()
	if _, ok := s.reservations[snap.ID]; ok {
		return r.tx.fail(infra.KindDuplicateKey, "reservation "+strconv.FormatInt(snap.ID, 10)+" already exists")
	}
	active := snap.Status == reservation.StatusActive
	if _, held := s.activeBySlot[snap.Slot]; active && held {
		return r.tx.fail(infra.KindConflict, "slot "+snap.Slot.String()+" already has an active reservation")
	}

	if err := r.tx.write(func() {
		delete(s.reservations, snap.ID)
		if active {
			delete(s.activeBySlot, snap.Slot)
		}
	}); err != nil {
		return err
	}
	s.reservations[snap.ID] = snap
	if active {
		s.activeBySlot[snap.Slot] = snap.ID
	}
	return nil
}

func (r *reservationRepo) Get(_ context.Context, id int64) (*reservation.Reservation, error) {
	snap, ok := r.tx.store.reservations[id]
	if !ok {
		return nil, r.tx.fail(infra.KindNotFound, "reservation "+strconv.FormatInt(id, 10)+" not found")
	}
	return reservation.Reconstruct(snap), nil
}

func (r *reservationRepo) Cancel(_ context.Context, id int64, at time.Time) (bool, error) {
	s := r.tx.store
	prev, ok := s.reservations[id]
	if !ok {
		return false, r.tx.fail(infra.KindNotFound, "reservation "+strconv.FormatInt(id, 10)+" not found")
	}
	if prev.Status != reservation.StatusActive {
		return false, nil
	}
	if err := r.tx.write(func() {
		s.reservations[id] = prev
		s.activeBySlot[prev.Slot] = id
	}); err != nil {
		return false, err
	}

	next := prev
	next.Status = reservation.StatusCancelled
	next.CancelledAt = &at
	s.reservations[id] = next
	delete(s.activeBySlot, prev.Slot)
	return true, nil
}

func (r *reservationRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*reservation.Reservation, error) {
	list := r.collect(func(snap reservation.Snapshot) bool { return snap.OwnerID == ownerID })
	slices.Reverse(list)
	return list, nil
}

func (r *reservationRepo) ListActiveByResource(_ context.Context, key resource.Key) ([]*reservation.Reservation, error) {
	return r.collect(func(snap reservation.Snapshot) bool {
		return snap.Slot.Resource == key && snap.Status == reservation.StatusActive
	}), nil
}

// collect returns matches in ascending id order.
func (r *reservationRepo) collect(match func(reservation.Snapshot) bool) []*reservation.Reservation {
	var snaps []reservation.Snapshot
	for _, snap := range r.tx.store.reservations {
		if match(snap) {
			snaps = append(snaps, snap)
		}
	}
	slices.SortFunc(snaps, func(a, b reservation.Snapshot) int { return cmp.Compare(a.ID, b.ID) })

	out := make([]*reservation.Reservation, len(snaps))
	for i, snap := range snaps {
		out[i] = reservation.Reconstruct(snap)
	}
	return out
}
