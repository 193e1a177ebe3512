package invoice

const (
	Table = "invoices"

	// KeyColumn is unique; writes upsert on it.
	KeyColumn = "trips_memo_no"
)
