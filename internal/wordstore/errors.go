package wordstore

import "fmt"

// LookupError indicates the remote word store could not be reached or
// returned a non-success status. Callers treat it as transient and may
// retry with backoff.
type LookupError struct {
	// Status is the HTTP status code, 0 for transport-level failures.
	Status int
	Err    error
}

func (e *LookupError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("word store lookup failed: HTTP %d", e.Status)
	}
	return fmt.Sprintf("word store lookup failed: %v", e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
