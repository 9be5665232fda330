package validator

import "fmt"

// Error is the single error type the validator ever produces. Validation
// is fail-fast: the first rule to fail unwinds the walk and its Error is
// the only one that reaches the caller.
type Error struct {
	Message string
}

func (err *Error) Error() string {
	return err.Message
}

func newError(message string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(message, args...),
	}
}
