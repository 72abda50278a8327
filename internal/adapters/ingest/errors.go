package ingest

import (
	"errors"
	"fmt"
)

// Sentinel kinds for ingestion errors.
var (
	ErrFileNotFound    = errors.New("file not found")
	ErrMalformedRecord = errors.New("malformed record")
	ErrMissingColumn   = errors.New("missing column")
)

// RowError locates a malformed record. It matches ErrMalformedRecord and the
// underlying cause with errors.Is.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%v at line %d: %v", ErrMalformedRecord, e.Line, e.Err)
	}
	return fmt.Sprintf("%v at line %d, column %q: %v", ErrMalformedRecord, e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}
