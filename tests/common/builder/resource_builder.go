//go:build unit || e2e

package builder

import (
	"time"

	"slot-reservation/internal/domain/resource"
	reqdto "slot-reservation/internal/handler/dto/request"
	"slot-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ResourceBuilder struct {
	Type           resource.Type
	ID             int64
	OwnerID        uuid.UUID
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
	Now            time.Time
}

func NewResourceBuilder() *ResourceBuilder {
	lat, lng := 37.5665, 126.9780
	return &ResourceBuilder{
		Type:       resource.TypeParking,
		ID:         1,
		OwnerID:    uuid.New(),
		Name:       "Central Parking",
		Address:    "1 Main Street",
		Latitude:   &lat,
		Longitude:  &lng,
		Rows:       4,
		Cols:       3,
		TotalSlots: 12,
		Now:        time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(b)
	return b
}

func (b *ResourceBuilder) Key() resource.Key {
	return resource.NewKey(b.Type, b.ID)
}

func (b *ResourceBuilder) BuildDescriptor() resource.Descriptor {
	return resource.Descriptor{
		Name:           b.Name,
		Address:        b.Address,
		Description:    b.Description,
		OperatingHours: b.OperatingHours,
		ImageURL:       b.ImageURL,
		Latitude:       b.Latitude,
		Longitude:      b.Longitude,
		UnitPrice:      b.UnitPrice,
		EVCharging:     b.EVCharging,
		Rows:           b.Rows,
		Cols:           b.Cols,
		TotalSlots:     b.TotalSlots,
	}
}

func (b *ResourceBuilder) BuildDomain() (*resource.Resource, error) {
	return resource.NewResource(b.Key(), b.OwnerID, b.BuildDescriptor(), b.Now)
}

// BuildView panics on an invalid builder; tests only build views from
// defaults they control.
func (b *ResourceBuilder) BuildView() *queries.ResourceView {
	res, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return queries.NewResourceView(res)
}

func (b *ResourceBuilder) BuildCreateRequest() reqdto.CreateResourceRequest {
	return reqdto.CreateResourceRequest{
		Name:           b.Name,
		Address:        b.Address,
		Description:    b.Description,
		OperatingHours: b.OperatingHours,
		ImageURL:       b.ImageURL,
		Latitude:       b.Latitude,
		Longitude:      b.Longitude,
		UnitPrice:      b.UnitPrice,
		EVCharging:     b.EVCharging,
		Rows:           b.Rows,
		Cols:           b.Cols,
		TotalSlots:     b.TotalSlots,
	}
}

// Fluent builder methods
func (b *ResourceBuilder) AsEV() *ResourceBuilder {
	b.Type = resource.TypeEV
	b.Name = "Riverside Chargers"
	b.Rows, b.Cols, b.TotalSlots = 2, 2, 4
	return b
}

func (b *ResourceBuilder) WithType(t resource.Type) *ResourceBuilder {
	b.Type = t
	return b
}

func (b *ResourceBuilder) WithID(id int64) *ResourceBuilder {
	b.ID = id
	return b
}

func (b *ResourceBuilder) WithOwnerID(ownerID uuid.UUID) *ResourceBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *ResourceBuilder) WithName(name string) *ResourceBuilder {
	b.Name = name
	return b
}

func (b *ResourceBuilder) WithAddress(address string) *ResourceBuilder {
	b.Address = address
	return b
}

func (b *ResourceBuilder) WithGeometry(rows, cols, total int) *ResourceBuilder {
	b.Rows, b.Cols, b.TotalSlots = rows, cols, total
	return b
}

func (b *ResourceBuilder) WithUnitPrice(price decimal.Decimal) *ResourceBuilder {
	b.UnitPrice = &price
	return b
}

func (b *ResourceBuilder) WithEVCharging(v bool) *ResourceBuilder {
	b.EVCharging = v
	return b
}
