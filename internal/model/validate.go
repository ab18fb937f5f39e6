package model

import "fmt"

// ValidationError reports a single required-field violation found before an
// insert. It is the only error category the HTTP layer maps to a client
// fault; everything else is a server error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}
