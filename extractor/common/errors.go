package common

import (
	"errors"
	"fmt"
)

var (
	ErrDateParse       = errors.New("unparseable date")
	ErrInvalidYear     = errors.New("reference year must be four digits")
	ErrUnknownFormat   = errors.New("unknown statement format")
	ErrNoLegacyLayout  = errors.New("format has no legacy layout")
	ErrUnknownLayout   = errors.New("unknown output layout")
	ErrUnknownEncoding = errors.New("unknown input encoding")
	ErrStdoutDirectory = errors.New("a directory of statements cannot be written to stdout")
)

// LineError ties an assembly failure to the input line that caused it.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
