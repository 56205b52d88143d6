package store

import "fmt"

// Error reports a persistence failure. It is always recoverable: callers
// surface it and carry on.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }
