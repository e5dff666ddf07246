package favorite

import (
	"time"

	"github.com/google/uuid"

	"slot-reservation/internal/domain/resource"
)

// Favorite always stores the resolved, typed key so entries for a parking
// lot and an EV station with the same numeric id stay distinct.
type Favorite struct {
	ownerID   uuid.UUID
	resource  resource.Key
	createdAt time.Time
}

func New(ownerID uuid.UUID, key resource.Key, now time.Time) *Favorite {
	return &Favorite{ownerID: ownerID, resource: key, createdAt: now}
}

func (f *Favorite) OwnerID() uuid.UUID     { return f.ownerID }
func (f *Favorite) Resource() resource.Key { return f.resource }
func (f *Favorite) CreatedAt() time.Time   { return f.createdAt }

// Matches reports whether f refers to id in the hinted namespace, or in any
// namespace when hint is empty.
func (f *Favorite) Matches(id int64, hint resource.Type) bool {
	if f.resource.ID != id {
		return false
	}
	return hint == "" || f.resource.Type == hint
}
