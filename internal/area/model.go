package area

// Area is a service location and the pricing category it belongs to.
type Area struct {
	ID               int64  `json:"id,omitempty"`
	Location         string `json:"location"`
	LocationCategory string `json:"location_category"`
}
