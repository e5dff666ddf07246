package postgres

import (
	"context"
	"strconv"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/infra"

	sq "github.com/Masterminds/squirrel"
)

type slotRepo struct {
	tx *pgTx
}

func slotEq(key slot.Key) sq.Eq {
	return sq.Eq{
		"resource_type": string(key.Resource.Type),
		"resource_id":   key.Resource.ID,
		"slot_index":    key.Index,
	}
}

func slotsOf(key resource.Key) sq.Eq {
	return sq.Eq{"resource_type": string(key.Type), "resource_id": key.ID}
}

// initSlotsSQL creates every slot of a resource as free in one round trip.
const initSlotsSQL = `
INSERT INTO slots (resource_type, resource_id, slot_index, state)
SELECT $1::text, $2::bigint, i, $3::text FROM generate_series(0, $4::int - 1) AS i`

func (r *slotRepo) Init(ctx context.Context, key resource.Key, total int) error {
	if _, err := r.tx.db.Exec(ctx, initSlotsSQL, string(key.Type), key.ID, string(slot.StateFree), total); err != nil {
		return r.tx.wrap("failed to init slots for "+key.String(), err)
	}
	return nil
}

func (r *slotRepo) State(ctx context.Context, key slot.Key) (slot.State, error) {
	query, args, err := psql.Select("state").From("slots").Where(slotEq(key)).ToSql()
	if err != nil {
		return "", r.tx.wrap("build slot state", err)
	}
	var state string
	if err := r.tx.db.QueryRow(ctx, query, args...).Scan(&state); err != nil {
		return "", r.tx.wrap("slot "+key.String()+" not loaded", err)
	}
	parsed, err := parseSlotState(state)
	if err != nil {
		return "", r.tx.wrap("slot "+key.String()+" is corrupt", err)
	}
	return parsed, nil
}

func (r *slotRepo) MarkOccupied(ctx context.Context, key slot.Key) error {
	return r.transition(ctx, key, slot.StateFree, slot.StateOccupied)
}

func (r *slotRepo) MarkFree(ctx context.Context, key slot.Key) error {
	return r.transition(ctx, key, slot.StateOccupied, slot.StateFree)
}

// transition is the per-slot compare-and-set. Zero rows means either the
// slot is missing or it was not in the expected state.
func (r *slotRepo) transition(ctx context.Context, key slot.Key, from, to slot.State) error {
	query, args, err := psql.Update("slots").
		Set("state", string(to)).
		Where(slotEq(key)).
		Where(sq.Eq{"state": string(from)}).
		ToSql()
	if err != nil {
		return r.tx.wrap("build slot transition", err)
	}
	tag, err := r.tx.db.Exec(ctx, query, args...)
	if err != nil {
		return r.tx.wrap("failed to mark slot "+key.String()+" "+string(to), err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := r.State(ctx, key); err != nil {
		return err
	}
	return r.tx.fail(infra.KindConflict, "slot "+key.String()+" is not "+string(from))
}

func (r *slotRepo) Occupied(ctx context.Context, key resource.Key) ([]int, error) {
	query, args, err := psql.Select("slot_index").From("slots").
		Where(slotsOf(key)).
		Where(sq.Eq{"state": string(slot.StateOccupied)}).
		OrderBy("slot_index ASC").
		ToSql()
	if err != nil {
		return nil, r.tx.wrap("build occupied slots", err)
	}
	rows, err := r.tx.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.tx.wrap("failed to list occupied slots for "+key.String(), err)
	}
	defer rows.Close()

	occupied := []int{}
	for rows.Next() {
		var i int
		if err := rows.Scan(&i); err != nil {
			return nil, r.tx.wrap("failed to scan slot index", err)
		}
		occupied = append(occupied, i)
	}
	if err := rows.Err(); err != nil {
		return nil, r.tx.wrap("failed to list occupied slots for "+key.String(), err)
	}
	return occupied, nil
}

func (r *slotRepo) Drop(ctx context.Context, key resource.Key) error {
	query, args, err := psql.Delete("slots").Where(slotsOf(key)).ToSql()
	if err != nil {
		return r.tx.wrap("build drop slots", err)
	}
	tag, err := r.tx.db.Exec(ctx, query, args...)
	if err != nil {
		return r.tx.wrap("failed to drop slots for "+key.String(), err)
	}
	r.tx.logger.DebugContext(ctx, "slots dropped",
		"resource", key.String(),
		"count", strconv.FormatInt(tag.RowsAffected(), 10))
	return nil
}
