package tables

import "fmt"

// TableError represents an error loading or validating a static scoring table
type TableError struct {
	Table   string
	Message string
	Cause   error
}

func (e *TableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("table %s: %s: %v", e.Table, e.Message, e.Cause)
	}
	return fmt.Sprintf("table %s: %s", e.Table, e.Message)
}

func (e *TableError) Unwrap() error {
	return e.Cause
}
