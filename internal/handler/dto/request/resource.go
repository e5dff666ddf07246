package request

import (
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type CreateResourceRequest struct {
	Name           string           `json:"name" binding:"required,max=255"`
	Address        string           `json:"address" binding:"required,max=500"`
	Description    string           `json:"description"`
	OperatingHours string           `json:"operating_hours" binding:"max=100"`
	ImageURL       string           `json:"image_url" binding:"omitempty,url"`
	Latitude       *float64         `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude      *float64         `json:"longitude" binding:"omitempty,min=-180,max=180"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
	EVCharging     bool             `json:"ev_charging"`
	Rows           int              `json:"rows" binding:"omitempty,min=1,max=1000"`
	Cols           int              `json:"cols" binding:"omitempty,min=1,max=1000"`
	TotalSlots     int              `json:"total_slots" binding:"omitempty,min=1,max=10000"`
}

func (r CreateResourceRequest) ToDescriptor() (resource.Descriptor, error) {
	var d resource.Descriptor
	if err := copier.Copy(&d, &r); err != nil {
		return resource.Descriptor{}, errs.Wrap(err, "copy create request")
	}
	return d, nil
}

// UpdateResourceRequest is a partial update. id, available_count and
// total_slots are accepted only so the catalog can reject them.
type UpdateResourceRequest struct {
	ID             *int64           `json:"id"`
	AvailableCount *int             `json:"available_count"`
	TotalSlots     *int             `json:"total_slots"`
	Name           *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Address        *string          `json:"address" binding:"omitempty,min=1,max=500"`
	Description    *string          `json:"description"`
	OperatingHours *string          `json:"operating_hours" binding:"omitempty,max=100"`
	ImageURL       *string          `json:"image_url"`
	Latitude       *float64         `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude      *float64         `json:"longitude" binding:"omitempty,min=-180,max=180"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
	EVCharging     *bool            `json:"ev_charging"`
	Rows           *int             `json:"rows" binding:"omitempty,min=1,max=1000"`
	Cols           *int             `json:"cols" binding:"omitempty,min=1,max=1000"`
}

func (r UpdateResourceRequest) ToPatch() (resource.Patch, error) {
	var p resource.Patch
	if err := copier.Copy(&p, &r); err != nil {
		return resource.Patch{}, errs.Wrap(err, "copy update request")
	}
	return p, nil
}

type ListResourcesQuery struct {
	Page         int   `form:"page"`
	PerPage      int   `form:"per_page"`
	MinAvailable *int  `form:"min_available" binding:"omitempty,min=0"`
	EVCharging   *bool `form:"ev_charging"`
}

// ToParams leaves zero page values alone; the catalog applies its defaults.
func (q ListResourcesQuery) ToParams(t resource.Type, ownerID *uuid.UUID) queries.ListResourcesParams {
	return queries.ListResourcesParams{
		Type:         t,
		OwnerID:      ownerID,
		MinAvailable: q.MinAvailable,
		EVCharging:   q.EVCharging,
		Page:         q.Page,
		PerPage:      q.PerPage,
	}
}
