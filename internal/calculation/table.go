package calculation

const (
	Table     = "calculations"
	KeyColumn = "id"

	// LookupColumn holds the logical key matched by FindByKey.
	LookupColumn = "products_type_category"
)
