package area

const (
	Table     = "areas"
	KeyColumn = "id"
)
