package lookup

// Lookup is one choice value offered to a form field named by LookupKey.
type Lookup struct {
	ID          int64  `json:"id,omitempty"`
	LookupKey   string `json:"lookup_key"`
	LookupValue string `json:"lookup_value"`
}
