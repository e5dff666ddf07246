package memory

import (
	"cmp"
	"context"
	"slices"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/infra"
	"slot-reservation/internal/usecase/shared"
)

type resourceRepo struct {
	tx *memTx
}

func (r *resourceRepo) Create(_ context.Context, res *resource.Resource) error {
	s := r.tx.store
	key := res.Key()
	if _, ok := s.resources[key]; ok {
		return r.tx.fail(infra.KindDuplicateKey, "resource "+key.String()+" already exists")
	}
	if err := r.tx.write(func() { delete(s.resources, key) }); err != nil {
		return err
	}
	s.resources[key] = res.Snapshot()
	return nil
}

func (r *resourceRepo) Get(_ context.Context, key resource.Key) (*resource.Resource, error) {
	snap, ok := r.tx.store.resources[key]
	if !ok {
		return nil, r.tx.fail(infra.KindNotFound, "resource "+key.String()+" not found")
	}
	return resource.Reconstruct(snap), nil
}

// GetForUpdate needs no extra locking: write transactions already hold the
// store-wide lock.
func (r *resourceRepo) GetForUpdate(ctx context.Context, key resource.Key) (*resource.Resource, error) {
	return r.Get(ctx, key)
}

func (r *resourceRepo) Update(_ context.Context, res *resource.Resource) error {
	s := r.tx.store
	key := res.Key()
	prev, ok := s.resources[key]
	if !ok {
		return r.tx.fail(infra.KindNotFound, "resource "+key.String()+" not found")
	}
	if err := r.tx.write(func() { s.resources[key] = prev }); err != nil {
		return err
	}
	next := res.Snapshot()
	// available_count is owned by AdjustAvailable/SetAvailable only
	next.AvailableCount = prev.AvailableCount
	s.resources[key] = next
	return nil
}

func (r *resourceRepo) Delete(_ context.Context, key resource.Key) error {
	s := r.tx.store
	prev, ok := s.resources[key]
	if !ok {
		return r.tx.fail(infra.KindNotFound, "resource "+key.String()+" not found")
	}
	if err := r.tx.write(func() { s.resources[key] = prev }); err != nil {
		return err
	}
	delete(s.resources, key)
	return nil
}

func (r *resourceRepo) List(_ context.Context, f shared.ResourceFilter) ([]*resource.Resource, int, error) {
	var matched []resource.Snapshot
	for key, snap := range r.tx.store.resources {
		if key.Type != f.Type {
			continue
		}
		if f.OwnerID != nil && snap.OwnerID != *f.OwnerID {
			continue
		}
		if f.MinAvailable != nil && snap.AvailableCount < *f.MinAvailable {
			continue
		}
		if f.EVCharging != nil && snap.EVCharging != *f.EVCharging {
			continue
		}
		matched = append(matched, snap)
	}
	slices.SortFunc(matched, func(a, b resource.Snapshot) int {
		return cmp.Compare(a.Key.ID, b.Key.ID)
	})

	total := len(matched)
	start := min(f.Offset, total)
	end := total
	if f.Limit > 0 {
		end = min(start+f.Limit, total)
	}

	page := make([]*resource.Resource, 0, end-start)
	for _, snap := range matched[start:end] {
		page = append(page, resource.Reconstruct(snap))
	}
	return page, total, nil
}

func (r *resourceRepo) AdjustAvailable(_ context.Context, key resource.Key, delta int) (bool, error) {
	s := r.tx.store
	prev, ok := s.resources[key]
	if !ok {
		return false, r.tx.fail(infra.KindNotFound, "resource "+key.String()+" not found")
	}
	n := prev.AvailableCount + delta
	if n < 0 || n > prev.TotalSlots {
		return false, nil
	}
	if err := r.tx.write(func() { s.resources[key] = prev }); err != nil {
		return false, err
	}
	next := prev
	next.AvailableCount = n
	s.resources[key] = next
	return true, nil
}

func (r *resourceRepo) SetAvailable(_ context.Context, key resource.Key, n int) error {
	s := r.tx.store
	prev, ok := s.resources[key]
	if !ok {
		return r.tx.fail(infra.KindNotFound, "resource "+key.String()+" not found")
	}
	if n < 0 || n > prev.TotalSlots {
		return r.tx.fail(infra.KindConflict, "available count out of range for "+key.String())
	}
	if err := r.tx.write(func() { s.resources[key] = prev }); err != nil {
		return err
	}
	next := prev
	next.AvailableCount = n
	s.resources[key] = next
	return nil
}

func (r *resourceRepo) Keys(_ context.Context) ([]resource.Key, error) {
	keys := make([]resource.Key, 0, len(r.tx.store.resources))
	for key := range r.tx.store.resources {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, compareKeys)
	return keys, nil
}

func compareKeys(a, b resource.Key) int {
	return cmp.Or(cmp.Compare(a.Type, b.Type), cmp.Compare(a.ID, b.ID))
}
