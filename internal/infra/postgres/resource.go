package postgres

import (
	"context"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/infra"
	"slot-reservation/internal/pkg/pgconv"
	"slot-reservation/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var resourceColumns = []string{
	"resource_type",
	"id",
	"owner_id",
	"name",
	"address",
	"description",
	"operating_hours",
	"image_url",
	"latitude",
	"longitude",
	"unit_price::text",
	"ev_charging",
	"grid_rows",
	"grid_cols",
	"total_slots",
	"available_count",
	"created_at",
	"updated_at",
}

type resourceRepo struct {
	tx *pgTx
}

func keyEq(key resource.Key) sq.Eq {
	return sq.Eq{"resource_type": string(key.Type), "id": key.ID}
}

func (r *resourceRepo) Create(ctx context.Context, res *resource.Resource) error {
	s := res.Snapshot()
	query, args, err := psql.Insert("resources").
		Columns(
			"resource_type", "id", "owner_id", "name", "address", "description",
			"operating_hours", "image_url", "latitude", "longitude", "unit_price",
			"ev_charging", "grid_rows", "grid_cols", "total_slots", "available_count",
			"created_at", "updated_at",
		).
		Values(
			string(s.Key.Type), s.Key.ID, pgconv.UUIDToPgtype(s.OwnerID), s.Name, s.Address, s.Description,
			s.OperatingHours, s.ImageURL, pgconv.Float64PtrToPgtype(s.Latitude), pgconv.Float64PtrToPgtype(s.Longitude),
			sq.Expr("?::text::numeric", pgconv.DecimalToText(s.UnitPrice)),
			s.EVCharging, s.Rows, s.Cols, s.TotalSlots, s.AvailableCount,
			s.CreatedAt, s.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return r.tx.wrap("build insert resource", err)
	}
	if _, err := r.tx.db.Exec(ctx, query, args...); err != nil {
		return r.tx.wrap("failed to create resource "+s.Key.String(), err)
	}
	return nil
}

func (r *resourceRepo) Get(ctx context.Context, key resource.Key) (*resource.Resource, error) {
	return r.get(ctx, key, "")
}

// GetForUpdate takes the row lock that orders every writer of a resource:
// resource row, then slots, then reservations.
func (r *resourceRepo) GetForUpdate(ctx context.Context, key resource.Key) (*resource.Resource, error) {
	return r.get(ctx, key, "FOR UPDATE")
}

func (r *resourceRepo) get(ctx context.Context, key resource.Key, suffix string) (*resource.Resource, error) {
	b := psql.Select(resourceColumns...).From("resources").Where(keyEq(key))
	if suffix != "" {
		b = b.Suffix(suffix)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, r.tx.wrap("build select resource", err)
	}
	res, err := scanResource(r.tx.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, r.tx.wrap("resource "+key.String()+" not loaded", err)
	}
	return res, nil
}

// Update writes descriptive fields and geometry. available_count is left to
// AdjustAvailable and SetAvailable.
func (r *resourceRepo) Update(ctx context.Context, res *resource.Resource) error {
	s := res.Snapshot()
	query, args, err := psql.Update("resources").
		SetMap(map[string]any{
			"name":            s.Name,
			"address":         s.Address,
			"description":     s.Description,
			"operating_hours": s.OperatingHours,
			"image_url":       s.ImageURL,
			"latitude":        pgconv.Float64PtrToPgtype(s.Latitude),
			"longitude":       pgconv.Float64PtrToPgtype(s.Longitude),
			"unit_price":      sq.Expr("?::text::numeric", pgconv.DecimalToText(s.UnitPrice)),
			"ev_charging":     s.EVCharging,
			"grid_rows":       s.Rows,
			"grid_cols":       s.Cols,
			"updated_at":      s.UpdatedAt,
		}).
		Where(keyEq(s.Key)).
		ToSql()
	if err != nil {
		return r.tx.wrap("build update resource", err)
	}
	return r.execOne(ctx, query, args, "resource "+s.Key.String())
}

func (r *resourceRepo) Delete(ctx context.Context, key resource.Key) error {
	query, args, err := psql.Delete("resources").Where(keyEq(key)).ToSql()
	if err != nil {
		return r.tx.wrap("build delete resource", err)
	}
	return r.execOne(ctx, query, args, "resource "+key.String())
}

func (r *resourceRepo) List(ctx context.Context, f shared.ResourceFilter) ([]*resource.Resource, int, error) {
	where := sq.And{sq.Eq{"resource_type": string(f.Type)}}
	if f.OwnerID != nil {
		where = append(where, sq.Eq{"owner_id": pgconv.UUIDToPgtype(*f.OwnerID)})
	}
	if f.MinAvailable != nil {
		where = append(where, sq.GtOrEq{"available_count": *f.MinAvailable})
	}
	if f.EVCharging != nil {
		where = append(where, sq.Eq{"ev_charging": *f.EVCharging})
	}

	countQuery, countArgs, err := psql.Select("count(*)").From("resources").Where(where).ToSql()
	if err != nil {
		return nil, 0, r.tx.wrap("build count resources", err)
	}
	var total int
	if err := r.tx.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, r.tx.wrap("failed to count resources", err)
	}

	b := psql.Select(resourceColumns...).From("resources").Where(where).OrderBy("id ASC")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, 0, r.tx.wrap("build list resources", err)
	}
	rows, err := r.tx.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, r.tx.wrap("failed to list resources", err)
	}
	defer rows.Close()

	var page []*resource.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, 0, r.tx.wrap("failed to scan resource", err)
		}
		page = append(page, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.tx.wrap("failed to list resources", err)
	}
	return page, total, nil
}

// AdjustAvailable is a guarded increment: rows outside [0, total_slots] are
// not updated, which is reported as applied=false.
func (r *resourceRepo) AdjustAvailable(ctx context.Context, key resource.Key, delta int) (bool, error) {
	query, args, err := psql.Update("resources").
		Set("available_count", sq.Expr("available_count + ?", delta)).
		Where(keyEq(key)).
		Where(sq.Expr("available_count + ? BETWEEN 0 AND total_slots", delta)).
		ToSql()
	if err != nil {
		return false, r.tx.wrap("build adjust available", err)
	}
	tag, err := r.tx.db.Exec(ctx, query, args...)
	if err != nil {
		return false, r.tx.wrap("failed to adjust available for "+key.String(), err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	if err := r.exists(ctx, key); err != nil {
		return false, err
	}
	return false, nil
}

func (r *resourceRepo) SetAvailable(ctx context.Context, key resource.Key, n int) error {
	query, args, err := psql.Update("resources").
		Set("available_count", n).
		Where(keyEq(key)).
		ToSql()
	if err != nil {
		return r.tx.wrap("build set available", err)
	}
	return r.execOne(ctx, query, args, "resource "+key.String())
}

func (r *resourceRepo) Keys(ctx context.Context) ([]resource.Key, error) {
	query, args, err := psql.Select("resource_type", "id").From("resources").
		OrderBy("resource_type ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, r.tx.wrap("build resource keys", err)
	}
	rows, err := r.tx.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.tx.wrap("failed to list resource keys", err)
	}
	defer rows.Close()

	var keys []resource.Key
	for rows.Next() {
		var (
			t  string
			id int64
		)
		if err := rows.Scan(&t, &id); err != nil {
			return nil, r.tx.wrap("failed to scan resource key", err)
		}
		keys = append(keys, resource.NewKey(resource.Type(t), id))
	}
	if err := rows.Err(); err != nil {
		return nil, r.tx.wrap("failed to list resource keys", err)
	}
	return keys, nil
}

func (r *resourceRepo) exists(ctx context.Context, key resource.Key) error {
	query, args, err := psql.Select("1").From("resources").Where(keyEq(key)).ToSql()
	if err != nil {
		return r.tx.wrap("build resource exists", err)
	}
	var one int
	if err := r.tx.db.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		return r.tx.wrap("resource "+key.String()+" not loaded", err)
	}
	return nil
}

// execOne runs a statement that must touch exactly one row.
func (r *resourceRepo) execOne(ctx context.Context, query string, args []any, what string) error {
	tag, err := r.tx.db.Exec(ctx, query, args...)
	if err != nil {
		return r.tx.wrap("failed to write "+what, err)
	}
	if tag.RowsAffected() == 0 {
		return r.tx.fail(infra.KindNotFound, what+" not found")
	}
	return nil
}

func scanResource(row pgx.Row) (*resource.Resource, error) {
	var (
		s         resource.Snapshot
		t         string
		owner     pgtype.UUID
		lat, lng  pgtype.Float8
		unitPrice pgtype.Text
	)
	err := row.Scan(
		&t, &s.Key.ID, &owner, &s.Name, &s.Address, &s.Description,
		&s.OperatingHours, &s.ImageURL, &lat, &lng, &unitPrice,
		&s.EVCharging, &s.Rows, &s.Cols, &s.TotalSlots, &s.AvailableCount,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Key.Type = resource.Type(t)
	s.OwnerID = pgconv.UUIDFromPgtype(owner)
	if s.Latitude, err = pgconv.Float64PtrFromPgtype(lat); err != nil {
		return nil, err
	}
	if s.Longitude, err = pgconv.Float64PtrFromPgtype(lng); err != nil {
		return nil, err
	}
	if s.UnitPrice, err = pgconv.DecimalFromText(unitPrice); err != nil {
		return nil, err
	}
	return resource.Reconstruct(s), nil
}
