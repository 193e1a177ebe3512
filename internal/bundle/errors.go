package bundle

import "fmt"

// ImportError reports the table an import stopped at. Tables listed in
// Imported were written before the failure and stay written.
type ImportError struct {
	Table    string
	Imported []string
	Err      error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import failed for table %s: %v", e.Table, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
