package customer

type Customer struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
}
