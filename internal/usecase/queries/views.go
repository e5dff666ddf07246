package queries

import (
	"time"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)
type ResourceView struct {
	Type           resource.Type   `json:"type"`
	ID             int64           `json:"id"`
	OwnerID        uuid.UUID       `json:"owner_id"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	Description    string          `json:"description"`
	OperatingHours string          `json:"operating_hours"`
	ImageURL       string          `json:"image_url"`
	Latitude       *float64        `json:"latitude,omitempty"`
	Longitude      *float64        `json:"longitude,omitempty"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	EVCharging     bool            `json:"ev_charging"`
	Rows           int             `json:"rows"`
	Cols           int             `json:"cols"`
	TotalSlots     int             `json:"total_slots"`
	AvailableCount int             `json:"available_count"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type AvailabilityView struct {
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
	Total     int `json:"total"`
}

type SlotCellView struct {
	ID    int  `json:"id"`
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	Taken bool `json:"taken"`
	Free  bool `json:"free"`
}

type ResourceDetailView struct {
	ResourceView
	Availability AvailabilityView `json:"availability"`
	Slots        []SlotCellView   `json:"slots"`
}

type SlotStateView struct {
	ResourceType resource.Type `json:"resource_type"`
	ResourceID   int64         `json:"resource_id"`
	Index        int           `json:"index"`
	Row          int           `json:"row"`
	Col          int           `json:"col"`
	State        slot.State    `json:"state"`
}

type ResourcePage struct {
	Items   []*ResourceView `json:"items"`
	Count   int             `json:"count"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

type ReservationView struct {
	ID              int64               `json:"id"`
	OwnerID         uuid.UUID           `json:"owner_id"`
	ResourceType    resource.Type       `json:"resource_type"`
	ResourceID      int64               `json:"resource_id"`
	SlotIndex       int                 `json:"slot_index"`
	ResourceName    string              `json:"resource_name"`
	ResourceAddress string              `json:"resource_address"`
	StartTime       time.Time           `json:"start_time"`
	EndTime         time.Time           `json:"end_time"`
	Status          reservation.Status  `json:"status"`
	TotalPrice      decimal.NullDecimal `json:"total_price"`
	CreatedAt       time.Time           `json:"created_at"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
}

type FavoriteView struct {
	PlaceType resource.Type `json:"place_type"`
	*ResourceView
}

// DeletedResourceName stands in for the name of a resource that no longer
// exists when its reservations are listed.
const DeletedResourceName = "resource no longer exists"

func NewResourceView(r *resource.Resource) *ResourceView {
	g := r.Geometry()
	return &ResourceView{
		Type:           r.Type(),
		ID:             r.ID(),
		OwnerID:        r.OwnerID(),
		Name:           r.Name(),
		Address:        r.Address(),
		Description:    r.Description(),
		OperatingHours: r.OperatingHours(),
		ImageURL:       r.ImageURL(),
		Latitude:       r.Latitude(),
		Longitude:      r.Longitude(),
		UnitPrice:      r.UnitPrice(),
		EVCharging:     r.EVCharging(),
		Rows:           g.Rows(),
		Cols:           g.Cols(),
		TotalSlots:     g.Total(),
		AvailableCount: r.Available(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}

// NewReservationView denormalizes the resource name and address; res may be
// nil when the resource was deleted.
func NewReservationView(r *reservation.Reservation, res *resource.Resource) *ReservationView {
	v := &ReservationView{
		ID:           r.ID(),
		OwnerID:      r.OwnerID(),
		ResourceType: r.Slot().Resource.Type,
		ResourceID:   r.Slot().Resource.ID,
		SlotIndex:    r.Slot().Index,
		ResourceName: DeletedResourceName,
		StartTime:    r.TimeSlot().Start(),
		EndTime:      r.TimeSlot().End(),
		Status:       r.Status(),
		TotalPrice:   r.TotalPrice(),
		CreatedAt:    r.CreatedAt(),
		CancelledAt:  r.CancelledAt(),
	}
	if res != nil {
		v.ResourceName = res.Name()
		v.ResourceAddress = res.Address()
	}
	return v
}

func newGridView(grid slot.Grid) ([]SlotCellView, AvailabilityView) {
	cells := make([]SlotCellView, len(grid.Cells))
	for i, c := range grid.Cells {
		cells[i] = SlotCellView{ID: c.Index, Row: c.Row, Col: c.Col, Taken: c.Taken, Free: c.Free()}
	}
	occupied := grid.OccupiedCount()
	return cells, AvailabilityView{Available: grid.Total - occupied, Occupied: occupied, Total: grid.Total}
}
