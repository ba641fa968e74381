package service

import "fmt"

// InvalidArgumentError reports a path identifier that is not an integer.
type InvalidArgumentError struct {
	Param string
	Value string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be an integer", e.Param, e.Value)
}

// StorageError wraps a failed store query together with the identifier
// that was queried.
type StorageError struct {
	Op      string // what was being fetched, e.g. "stats"
	Subject string // "class" or "learner"
	ID      int
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("error fetching %s for %s %d: %v", e.Op, e.Subject, e.ID, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
