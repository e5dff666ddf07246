package request

import "slot-reservation/internal/domain/resource"

type AddFavoriteRequest struct {
	PlaceType string `json:"place_type"`
}

// ParseTypeHint accepts an empty hint, which makes the disambiguator probe
// both namespaces.
func ParseTypeHint(s string) (resource.Type, error) {
	if s == "" {
		return "", nil
	}
	return resource.ParseType(s)
}
