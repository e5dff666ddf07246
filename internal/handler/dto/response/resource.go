package response

import (
	"time"

	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type ResourceResponse struct {
	Type           string          `json:"type"`
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

type AvailabilityResponse struct {
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
	Total     int `json:"total"`
}

type SlotCellResponse struct {
	ID    int  `json:"id"`
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	Taken bool `json:"taken"`
	Free  bool `json:"free"`
}

type ResourceDetailResponse struct {
	ResourceResponse
	Availability AvailabilityResponse `json:"availability"`
	Slots        []SlotCellResponse   `json:"slots"`
}

type SlotStateResponse struct {
	ResourceType string `json:"resource_type"`
	ResourceID   int64  `json:"resource_id"`
	Index        int    `json:"index"`
	Row          int    `json:"row"`
	Col          int    `json:"col"`
	State        string `json:"state"`
}

type ResourcePageResponse struct {
	Items   []ResourceResponse `json:"items"`
	Count   int                `json:"count"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
}

type DeleteResourceResponse struct {
	CancelledReservations int `json:"cancelled_reservations"`
}

func FromResourceView(v *queries.ResourceView) (*ResourceResponse, error) {
	var out ResourceResponse
	if err := copier.Copy(&out, v); err != nil {
		return nil, errs.Wrap(err, "copy resource view")
	}
	return &out, nil
}

func FromResourceDetailView(v *queries.ResourceDetailView) (*ResourceDetailResponse, error) {
	base, err := FromResourceView(&v.ResourceView)
	if err != nil {
		return nil, err
	}
	out := &ResourceDetailResponse{
		ResourceResponse: *base,
		Availability:     AvailabilityResponse(v.Availability),
		Slots:            make([]SlotCellResponse, 0, len(v.Slots)),
	}
	for _, cell := range v.Slots {
		out.Slots = append(out.Slots, SlotCellResponse(cell))
	}
	return out, nil
}

func FromSlotStateView(v *queries.SlotStateView) *SlotStateResponse {
	return &SlotStateResponse{
		ResourceType: v.ResourceType.String(),
		ResourceID:   v.ResourceID,
		Index:        v.Index,
		Row:          v.Row,
		Col:          v.Col,
		State:        string(v.State),
	}
}

func FromResourcePage(p *queries.ResourcePage) (*ResourcePageResponse, error) {
	out := &ResourcePageResponse{
		Items:   make([]ResourceResponse, 0, len(p.Items)),
		Count:   p.Count,
		Page:    p.Page,
		PerPage: p.PerPage,
	}
	for _, item := range p.Items {
		r, err := FromResourceView(item)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *r)
	}
	return out, nil
}
