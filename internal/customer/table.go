package customer

const (
	Table     = "customers"
	KeyColumn = "id"
)
