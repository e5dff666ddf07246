package memory

import (
	"context"
	"time"

	"slot-reservation/internal/domain/favorite"
	"slot-reservation/internal/domain/resource"

	"github.com/google/uuid"
)

type favoriteRepo struct {
	tx *memTx
}

func (r *favoriteRepo) Add(_ context.Context, f *favorite.Favorite) error {
	s := r.tx.store
	owner := f.OwnerID()
	prev := s.favorites[owner]
	for _, e := range prev {
		if e.key == f.Resource() {
			return nil
		}
	}
	if err := r.tx.write(func() { r.restore(owner, prev) }); err != nil {
		return err
	}
	next := append(append([]favoriteEntry(nil), prev...), favoriteEntry{key: f.Resource(), addedAt: f.CreatedAt().UnixNano()})
	s.favorites[owner] = next
	return nil
}

func (r *favoriteRepo) Remove(_ context.Context, ownerID uuid.UUID, id int64, hint resource.Type) (int, error) {
	s := r.tx.store
	prev := s.favorites[ownerID]
	kept := make([]favoriteEntry, 0, len(prev))
	for _, e := range prev {
		if e.key.ID == id && (hint == "" || e.key.Type == hint) {
			continue
		}
		kept = append(kept, e)
	}
	removed := len(prev) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := r.tx.write(func() { r.restore(ownerID, prev) }); err != nil {
		return 0, err
	}
	s.favorites[ownerID] = kept
	return removed, nil
}

func (r *favoriteRepo) Clear(_ context.Context, ownerID uuid.UUID) error {
	s := r.tx.store
	prev, ok := s.favorites[ownerID]
	if !ok {
		return nil
	}
	if err := r.tx.write(func() { r.restore(ownerID, prev) }); err != nil {
		return err
	}
	delete(s.favorites, ownerID)
	return nil
}

// ListByOwner returns favorites in the order they were added.
func (r *favoriteRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*favorite.Favorite, error) {
	entries := r.tx.store.favorites[ownerID]
	out := make([]*favorite.Favorite, len(entries))
	for i, e := range entries {
		out[i] = favorite.New(ownerID, e.key, time.Unix(0, e.addedAt).UTC())
	}
	return out, nil
}

func (r *favoriteRepo) restore(ownerID uuid.UUID, entries []favoriteEntry) {
	if entries == nil {
		delete(r.tx.store.favorites, ownerID)
		return
	}
	r.tx.store.favorites[ownerID] = entries
}
