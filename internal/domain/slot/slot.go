package slot

import (
	"fmt"

	"slot-reservation/internal/domain/resource"
)

// State has exactly two values. Occupancy is immediate on reservation; there
// is no pending state.
type State string

const (
	StateFree     State = "free"
	StateOccupied State = "occupied"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	return s == StateFree || s == StateOccupied
}

// Key identifies one slot. The resource key keeps slot sets of different
// resource types apart even when their numeric ids match.
type Key struct {
	Resource resource.Key
	Index    int
}

func NewKey(res resource.Key, index int) Key {
	return Key{Resource: res, Index: index}
}

func (k Key) String() string {
	return fmt.Sprintf("%s#%d", k.Resource, k.Index)
}
