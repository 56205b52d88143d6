package entry

import "fmt"

// ParseError: a field could not be read as a number (or date).
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse %q", e.Field, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError: a required field is missing or out of its allowed domain.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Field + " " + e.Reason }
