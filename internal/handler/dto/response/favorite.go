package response

import "slot-reservation/internal/usecase/queries"

// FavoriteResponse tags the resource with its namespace so parking and EV
// entries can share one list.
type FavoriteResponse struct {
	PlaceType string `json:"place_type"`
	ResourceResponse
}

func FromFavoriteView(v *queries.FavoriteView) (*FavoriteResponse, error) {
	r, err := FromResourceView(v.ResourceView)
	if err != nil {
		return nil, err
	}
	return &FavoriteResponse{PlaceType: v.PlaceType.String(), ResourceResponse: *r}, nil
}

func FromFavoriteViews(views []*queries.FavoriteView) ([]FavoriteResponse, error) {
	out := make([]FavoriteResponse, 0, len(views))
	for _, v := range views {
		f, err := FromFavoriteView(v)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, nil
}

type RemoveFavoriteResponse struct {
	Removed int `json:"removed"`
}
