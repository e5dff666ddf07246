package resource

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is the flat persisted form of a Resource. Stores hold snapshots
// and rebuild entities with Reconstruct.
type Snapshot struct {
	Key            Key
	OwnerID        uuid.UUID
	Name           string
	Address        string
	Description    string
	OperatingHours string
	ImageURL       string
	Latitude       *float64
	Longitude      *float64
	UnitPrice      decimal.Decimal
	EVCharging     bool
	Rows           int
	Cols           int
	TotalSlots     int
	AvailableCount int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func Reconstruct(s Snapshot) *Resource {
	return &Resource{
		key:            s.Key,
		ownerID:        s.OwnerID,
		name:           s.Name,
		address:        s.Address,
		description:    s.Description,
		operatingHours: s.OperatingHours,
		imageURL:       s.ImageURL,
		latitude:       s.Latitude,
		longitude:      s.Longitude,
		unitPrice:      s.UnitPrice,
		evCharging:     s.EVCharging,
		geometry:       Geometry{rows: s.Rows, cols: s.Cols, total: s.TotalSlots},
		available:      s.AvailableCount,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
	}
}

func (r *Resource) Snapshot() Snapshot {
	return Snapshot{
		Key:            r.key,
		OwnerID:        r.ownerID,
		Name:           r.name,
		Address:        r.address,
		Description:    r.description,
		OperatingHours: r.operatingHours,
		ImageURL:       r.imageURL,
		Latitude:       r.latitude,
		Longitude:      r.longitude,
		UnitPrice:      r.unitPrice,
		EVCharging:     r.evCharging,
		Rows:           r.geometry.rows,
		Cols:           r.geometry.cols,
		TotalSlots:     r.geometry.total,
		AvailableCount: r.available,
		CreatedAt:      r.createdAt,
		UpdatedAt:      r.updatedAt,
	}
}
