package dataprocessing

import "fmt"

// LoadError reports a file that could not be opened or parsed as a
// spreadsheet. It is recovered per file: the consolidator records the skip
// and moves on.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SchemaError reports a file whose structure does not match the expected
// layout, most commonly a missing commodity-name column. Recovered per file.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected schema in %s: %s", e.Path, e.Reason)
}
