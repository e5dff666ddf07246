package resource

import (
	"fmt"
	"strings"

	"slot-reservation/internal/pkg/errs"
)

// Type namespaces resource ids. A parking lot and an EV station may share the
// same numeric id; they are still distinct resources.
type Type string

const (
	TypeParking Type = "parking"
	TypeEV      Type = "ev"
)

var ErrInvalidType = errs.Define("resource type must be parking or ev", errs.ErrValidation)

// Types lists every namespace in disambiguation probe order.
var Types = []Type{TypeParking, TypeEV}

func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", errs.Wrapf(ErrInvalidType, "got %q", s)
	}
	return t, nil
}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeParking, TypeEV:
		return true
	default:
		return false
	}
}

// Key is the composite identity of a resource. Compare with ==.
type Key struct {
	Type Type
	ID   int64
}

func NewKey(t Type, id int64) Key {
	return Key{Type: t, ID: id}
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Type, k.ID)
}
