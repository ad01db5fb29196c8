package errs

import (
	"errors"
	"fmt"
)

// Common sentinel errors.
var (
	// ErrMissingAmount marks a deposit or withdrawal record without
	// an amount field.
	ErrMissingAmount = errors.New("transaction amount missing")
)

// The input file cannot be opened or its metadata cannot be read.
// Fatal: the run aborts before any record is processed.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot access data file [%s]: %s", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// Malformed input: an oversized data file (fatal) or a record missing
// a required amount (isolated to that record).
type InvalidDataError struct {
	Message string
	Err     error
}

func (e *InvalidDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid data: %s: %s", e.Message, e.Err)
	}
	return fmt.Sprintf("invalid data: %s", e.Message)
}

func (e *InvalidDataError) Unwrap() error { return e.Err }

// Failure rendering the output report. Fatal to the export step.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("report serialization failed: %s", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
