package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for fatal catalog format problems.
var (
	ErrMalformedExpansion = errors.New("malformed expansion block")
	ErrTruncated          = errors.New("catalog ends with a partially read card")
)

// FormatError reports a fatal format problem at a catalog line.
type FormatError struct {
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *FormatError) Unwrap() error { return e.Err }
