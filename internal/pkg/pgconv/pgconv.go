// Package pgconv converts between pgx column values and domain types.
package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var ErrInvalidFloat64Value = errors.New("invalid float64 value in pgtype.Float8")

// NUMERIC columns are selected as ::text so no precision is lost on the way
// to decimal.Decimal.

func DecimalFromText(pt pgtype.Text) (decimal.Decimal, error) {
	if !pt.Valid {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(pt.String)
}

func NullDecimalFromText(pt pgtype.Text) (decimal.NullDecimal, error) {
	if !pt.Valid {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(pt.String)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// DecimalToText is sent in text format and cast by the statement.
func DecimalToText(d decimal.Decimal) pgtype.Text {
	return pgtype.Text{String: d.String(), Valid: true}
}

func NullDecimalToText(d decimal.NullDecimal) pgtype.Text {
	if !d.Valid {
		return pgtype.Text{Valid: false}
	}
	return DecimalToText(d.Decimal)
}

func UUIDFromPgtype(pu pgtype.UUID) uuid.UUID {
	if !pu.Valid {
		return uuid.Nil
	}
	return uuid.UUID(pu.Bytes)
}

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func Float64PtrFromPgtype(pf pgtype.Float8) (*float64, error) {
	if !pf.Valid {
		return nil, nil
	}

	value, err := pf.Float64Value()
	if err != nil {
		return nil, ErrInvalidFloat64Value
	}

	return &value.Float64, nil
}

func Float64PtrToPgtype(f *float64) pgtype.Float8 {
	if f == nil {
		return pgtype.Float8{Valid: false}
	}
	return pgtype.Float8{Float64: *f, Valid: true}
}

func TimePtrFromPgtype(pt pgtype.Timestamptz) *time.Time {
	if !pt.Valid {
		return nil
	}
	t := pt.Time
	return &t
}

func TimePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
