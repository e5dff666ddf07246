package request

import (
	"time"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ResourceType string    `json:"resource_type" binding:"required"`
	ResourceID   int64     `json:"resource_id" binding:"required"`
	SlotIndex    *int      `json:"slot_index" binding:"required"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
}

// ToCommand leaves range checks on the id, index and window to the ledger so
// they surface as its validation errors.
func (r CreateReservationRequest) ToCommand(ownerID uuid.UUID) (commands.CreateReservationRequest, error) {
	t, err := resource.ParseType(r.ResourceType)
	if err != nil {
		return commands.CreateReservationRequest{}, err
	}
	return commands.CreateReservationRequest{
		OwnerID:   ownerID,
		Resource:  resource.NewKey(t, r.ResourceID),
		SlotIndex: *r.SlotIndex,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}, nil
}
