package files

import "fmt"

// DataRootError reports a missing or unreadable data root. It is the only
// discovery failure that aborts a run.
type DataRootError struct {
	Path string
	Err  error
}

func (e *DataRootError) Error() string {
	return fmt.Sprintf("data root %s is not usable: %v", e.Path, e.Err)
}

func (e *DataRootError) Unwrap() error {
	return e.Err
}
