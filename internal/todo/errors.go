package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDate is returned when a day block does not open with a
	// bracketed calendar date.
	ErrMalformedDate = errors.New("malformed date")
	// ErrMalformedTask is returned when a line that must be a task does not
	// start with the task marker.
	ErrMalformedTask = errors.New("malformed task")
	// ErrMalformedSection is returned when a section name cannot be written
	// back as a name line.
	ErrMalformedSection = errors.New("malformed section name")
	// ErrClockSkew is returned when the log holds a day later than today.
	ErrClockSkew = errors.New("date on file is ahead of today")
)

// ParseError locates a parse failure within the parsed text.
type ParseError struct {
	Line int   // 1-based line number, 0 if unknown
	Err  error // Underlying error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(line int, kind error, format string, args ...any) error {
	return &ParseError{
		Line: line,
		Err:  fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}
