package response

import (
	"time"

	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type ReservationResponse struct {
	ID              int64               `json:"id"`
	OwnerID         uuid.UUID           `json:"owner_id"`
	ResourceType    string              `json:"resource_type"`
	ResourceID      int64               `json:"resource_id"`
	SlotIndex       int                 `json:"slot_index"`
	ResourceName    string              `json:"resource_name"`
	ResourceAddress string              `json:"resource_address"`
	StartTime       time.Time           `json:"start_time"`
	EndTime         time.Time           `json:"end_time"`
	Status          string              `json:"status"`
	TotalPrice      decimal.NullDecimal `json:"total_price"`
	CreatedAt       time.Time           `json:"created_at"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
}

func FromReservationView(v *queries.ReservationView) (*ReservationResponse, error) {
	var out ReservationResponse
	if err := copier.Copy(&out, v); err != nil {
		return nil, errs.Wrap(err, "copy reservation view")
	}
	return &out, nil
}

func FromReservationViews(views []*queries.ReservationView) ([]ReservationResponse, error) {
	out := make([]ReservationResponse, 0, len(views))
	for _, v := range views {
		r, err := FromReservationView(v)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}
