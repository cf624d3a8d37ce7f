package catalog

import "fmt"

// ExtractionError marks one artifact as unreadable or unparseable.
// The batch continues; the error is reported in the run summary.
type ExtractionError struct {
	Path   string
	Reason string
}

func (e ExtractionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// ValidationError marks a candidate record that failed required-field
// checks. The candidate is dropped, not the batch.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FatalError aborts the run: a required root is missing or the prior
// table is unreadable in every supported encoding.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func Fatal(op string, err error) *FatalError {
	return &FatalError{Op: op, Err: err}
}
