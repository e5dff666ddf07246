package memory

import (
	"context"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/infra"
)

type slotRepo struct {
	tx *memTx
}

func (r *slotRepo) Init(_ context.Context, key resource.Key, total int) error {
	s := r.tx.store
	if _, ok := s.slots[key]; ok {
		return r.tx.fail(infra.KindDuplicateKey, "slots for "+key.String()+" already exist")
	}
	if err := r.tx.write(func() { delete(s.slots, key) }); err != nil {
		return err
	}
	states := make([]slot.State, total)
	for i := range states {
		states[i] = slot.StateFree
	}
	s.slots[key] = states
	return nil
}

func (r *slotRepo) State(_ context.Context, key slot.Key) (slot.State, error) {
	states, err := r.lookup(key)
	if err != nil {
		return "", err
	}
	return states[key.Index], nil
}

func (r *slotRepo) MarkOccupied(_ context.Context, key slot.Key) error {
	return r.transition(key, slot.StateFree, slot.StateOccupied)
}

func (r *slotRepo) MarkFree(_ context.Context, key slot.Key) error {
	return r.transition(key, slot.StateOccupied, slot.StateFree)
}

func (r *slotRepo) Occupied(_ context.Context, key resource.Key) ([]int, error) {
	states, ok := r.tx.store.slots[key]
	if !ok {
		return nil, r.tx.fail(infra.KindNotFound, "slots for "+key.String()+" not found")
	}
	var occupied []int
	for i, st := range states {
		if st == slot.StateOccupied {
			occupied = append(occupied, i)
		}
	}
	return occupied, nil
}

func (r *slotRepo) Drop(_ context.Context, key resource.Key) error {
	s := r.tx.store
	prev, ok := s.slots[key]
	if !ok {
		return nil
	}
	if err := r.tx.write(func() { s.slots[key] = prev }); err != nil {
		return err
	}
	delete(s.slots, key)
	return nil
}

// transition is the per-slot compare-and-set.
func (r *slotRepo) transition(key slot.Key, from, to slot.State) error {
	states, err := r.lookup(key)
	if err != nil {
		return err
	}
	if states[key.Index] != from {
		return r.tx.fail(infra.KindConflict, "slot "+key.String()+" is not "+from.String())
	}
	if err := r.tx.write(func() { states[key.Index] = from }); err != nil {
		return err
	}
	states[key.Index] = to
	return nil
}

func (r *slotRepo) lookup(key slot.Key) ([]slot.State, error) {
	states, ok := r.tx.store.slots[key.Resource]
	if !ok || key.Index < 0 || key.Index >= len(states) {
		return nil, r.tx.fail(infra.KindNotFound, "slot "+key.String()+" not found")
	}
	return states, nil
}
