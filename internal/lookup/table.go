package lookup

const (
	Table     = "lookup"
	KeyColumn = "id"

	keyField = "lookup_key"
)
