package confstore

import (
	"errors"
	"fmt"
)

// Common store errors.
var (
	// ErrMalformed indicates a persisted document exists but is not valid
	// JSON. It is never auto-recovered: overwriting a file the user may have
	// hand-edited would destroy their data.
	ErrMalformed = errors.New("malformed document")

	// ErrWrite indicates a directory-creation or file-write failure.
	ErrWrite = errors.New("write failed")
)

// ParseError wraps ErrMalformed with the offending file path.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

// WriteError wraps ErrWrite with the target file path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return ErrWrite
}

// IsMalformed checks if an error is a parse error.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}
