package postgres

import (
	"context"

	"slot-reservation/internal/domain/favorite"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/pkg/pgconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type favoriteRepo struct {
	tx *pgTx
}

// Add is idempotent per (owner, typed key).
func (r *favoriteRepo) Add(ctx context.Context, f *favorite.Favorite) error {
	key := f.Resource()
	query, args, err := psql.Insert("favorites").
		Columns("owner_id", "resource_type", "resource_id", "created_at").
		Values(pgconv.UUIDToPgtype(f.OwnerID()), string(key.Type), key.ID, f.CreatedAt()).
		Suffix("ON CONFLICT ON CONSTRAINT " + constraintFavoriteOwnerEntry + " DO NOTHING").
		ToSql()
	if err != nil {
		return r.tx.wrap("build insert favorite", err)
	}
	if _, err := r.tx.db.Exec(ctx, query, args...); err != nil {
		return r.tx.wrap("failed to add favorite "+key.String(), err)
	}
	return nil
}

func (r *favoriteRepo) Remove(ctx context.Context, ownerID uuid.UUID, id int64, hint resource.Type) (int, error) {
	where := sq.Eq{"owner_id": pgconv.UUIDToPgtype(ownerID), "resource_id": id}
	if hint != "" {
		where["resource_type"] = string(hint)
	}
	query, args, err := psql.Delete("favorites").Where(where).ToSql()
	if err != nil {
		return 0, r.tx.wrap("build delete favorite", err)
	}
	tag, err := r.tx.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, r.tx.wrap("failed to remove favorite", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *favoriteRepo) Clear(ctx context.Context, ownerID uuid.UUID) error {
	query, args, err := psql.Delete("favorites").Where(sq.Eq{"owner_id": pgconv.UUIDToPgtype(ownerID)}).ToSql()
	if err != nil {
		return r.tx.wrap("build clear favorites", err)
	}
	if _, err := r.tx.db.Exec(ctx, query, args...); err != nil {
		return r.tx.wrap("failed to clear favorites", err)
	}
	return nil
}

// ListByOwner keeps insertion order.
func (r *favoriteRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*favorite.Favorite, error) {
	query, args, err := psql.Select("resource_type", "resource_id", "created_at").From("favorites").
		Where(sq.Eq{"owner_id": pgconv.UUIDToPgtype(ownerID)}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, r.tx.wrap("build list favorites", err)
	}
	rows, err := r.tx.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.tx.wrap("failed to list favorites", err)
	}
	defer rows.Close()

	var favs []*favorite.Favorite
	for rows.Next() {
		var (
			t         string
			id        int64
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&t, &id, &createdAt); err != nil {
			return nil, r.tx.wrap("failed to scan favorite", err)
		}
		favs = append(favs, favorite.New(ownerID, resource.NewKey(resource.Type(t), id), createdAt.Time))
	}
	if err := rows.Err(); err != nil {
		return nil, r.tx.wrap("failed to list favorites", err)
	}
	return favs, nil
}
