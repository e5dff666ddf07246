package resource

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/pkg/patch"
)

var (
	ErrEmptyName           = errs.Define("resource name cannot be empty", errs.ErrValidation)
	ErrNameTooLong         = errs.Define("resource name is too long (max 255 characters)", errs.ErrValidation)
	ErrEmptyAddress        = errs.Define("resource address cannot be empty", errs.ErrValidation)
	ErrInvalidCoordinates  = errs.Define("latitude must be within [-90,90] and longitude within [-180,180]", errs.ErrValidation)
	ErrNegativeUnitPrice   = errs.Define("unit price cannot be negative", errs.ErrValidation)
	ErrUnitPriceRange      = errs.Define("unit price must be below 10000000000 with at most 2 decimal places", errs.ErrValidation)
	ErrImmutableID         = errs.Define("resource id cannot be changed", errs.ErrValidation)
	ErrDerivedAvailability = errs.Define("available count is derived from slot state and cannot be set", errs.ErrValidation)
	ErrImmutableTotalSlots = errs.Define("total slots cannot be changed after creation", errs.ErrValidation)
)

const MaxNameLength = 255

// Descriptor is the caller-supplied part of a resource. Zero geometry and
// unit price fall back to per-type defaults.
type Descriptor struct {
	Name           string
	Address        string
	Description    string
	OperatingHours string
	ImageURL       string
	Latitude       *float64
	Longitude      *float64
	UnitPrice      *decimal.Decimal
	EVCharging     bool
	Rows           int
	Cols           int
	TotalSlots     int
}

// Patch carries optional updates. ID, AvailableCount and TotalSlots exist so
// attempts to change them can be rejected rather than silently dropped.
type Patch struct {
	ID             *int64
	AvailableCount *int
	TotalSlots     *int

	Name           *string
	Address        *string
	Description    *string
	OperatingHours *string
	ImageURL       *string
	Latitude       *float64
	Longitude      *float64
	UnitPrice      *decimal.Decimal
	EVCharging     *bool
	Rows           *int
	Cols           *int
}

type Resource struct {
	key            Key
	ownerID        uuid.UUID
	name           string
	address        string
	description    string
	operatingHours string
	imageURL       string
	latitude       *float64
	longitude      *float64
	unitPrice      decimal.Decimal
	evCharging     bool
	geometry       Geometry
	available      int
	createdAt      time.Time
	updatedAt      time.Time
}

func NewResource(key Key, ownerID uuid.UUID, d Descriptor, now time.Time) (*Resource, error) {
	if !key.Type.IsValid() {
		return nil, ErrInvalidType
	}

	geometry, err := DefaultGeometry(key.Type, d.Rows, d.Cols, d.TotalSlots)
	if err != nil {
		return nil, err
	}

	r := &Resource{
		key:            key,
		ownerID:        ownerID,
		name:           strings.TrimSpace(d.Name),
		address:        strings.TrimSpace(d.Address),
		description:    d.Description,
		operatingHours: d.OperatingHours,
		imageURL:       d.ImageURL,
		latitude:       d.Latitude,
		longitude:      d.Longitude,
		unitPrice:      patch.Coalesce(d.UnitPrice, DefaultUnitPrice(key.Type)),
		evCharging:     d.EVCharging && key.Type == TypeParking,
		geometry:       geometry,
		available:      geometry.Total(),
		createdAt:      now,
		updatedAt:      now,
	}
	if r.operatingHours == "" {
		r.operatingHours = DefaultOperatingHours
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// ApplyPatch updates descriptive fields and grid shape. Nothing is changed
// when an error is returned.
func (r *Resource) ApplyPatch(p Patch, now time.Time) error {
	switch {
	case p.ID != nil:
		return ErrImmutableID
	case p.AvailableCount != nil:
		return ErrDerivedAvailability
	case p.TotalSlots != nil && *p.TotalSlots != r.geometry.Total():
		return ErrImmutableTotalSlots
	}

	geometry, err := NewGeometry(
		patch.Coalesce(p.Rows, r.geometry.Rows()),
		patch.Coalesce(p.Cols, r.geometry.Cols()),
		r.geometry.Total(),
	)
	if err != nil {
		return err
	}

	next := *r
	next.name = strings.TrimSpace(patch.Coalesce(p.Name, r.name))
	next.address = strings.TrimSpace(patch.Coalesce(p.Address, r.address))
	next.description = patch.Coalesce(p.Description, r.description)
	next.operatingHours = patch.Coalesce(p.OperatingHours, r.operatingHours)
	next.imageURL = patch.Coalesce(p.ImageURL, r.imageURL)
	if p.Latitude != nil {
		next.latitude = p.Latitude
	}
	if p.Longitude != nil {
		next.longitude = p.Longitude
	}
	next.unitPrice = patch.Coalesce(p.UnitPrice, r.unitPrice)
	next.evCharging = patch.Coalesce(p.EVCharging, r.evCharging) && r.key.Type == TypeParking
	next.geometry = geometry
	next.updatedAt = now

	if err := next.validate(); err != nil {
		return err
	}
	*r = next
	return nil
}

func (r *Resource) IsOwnedBy(ownerID uuid.UUID) bool {
	return r.ownerID == ownerID
}

func (r *Resource) validate() error {
	if r.name == "" {
		return ErrEmptyName
	}
	if len(r.name) > MaxNameLength {
		return ErrNameTooLong
	}
	if r.address == "" {
		return ErrEmptyAddress
	}
	if r.latitude != nil && (*r.latitude < -90 || *r.latitude > 90) {
		return ErrInvalidCoordinates
	}
	if r.longitude != nil && (*r.longitude < -180 || *r.longitude > 180) {
		return ErrInvalidCoordinates
	}
	if r.unitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}
	if r.unitPrice.GreaterThanOrEqual(maxUnitPrice) || !r.unitPrice.Equal(r.unitPrice.Round(unitPriceScale)) {
		return ErrUnitPriceRange
	}
	return nil
}

func (r *Resource) Key() Key                   { return r.key }
func (r *Resource) Type() Type                 { return r.key.Type }
func (r *Resource) ID() int64                  { return r.key.ID }
func (r *Resource) OwnerID() uuid.UUID         { return r.ownerID }
func (r *Resource) Name() string               { return r.name }
func (r *Resource) Address() string            { return r.address }
func (r *Resource) Description() string        { return r.description }
func (r *Resource) OperatingHours() string     { return r.operatingHours }
func (r *Resource) ImageURL() string           { return r.imageURL }
func (r *Resource) Latitude() *float64         { return r.latitude }
func (r *Resource) Longitude() *float64        { return r.longitude }
func (r *Resource) UnitPrice() decimal.Decimal { return r.unitPrice }
func (r *Resource) EVCharging() bool           { return r.evCharging }
func (r *Resource) Geometry() Geometry         { return r.geometry }
func (r *Resource) Available() int             { return r.available }
func (r *Resource) Occupied() int              { return r.geometry.Total() - r.available }
func (r *Resource) CreatedAt() time.Time       { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time       { return r.updatedAt }
