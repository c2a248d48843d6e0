package oerror

import "fmt"

// LockstepError is the error type returned by the synchronization core.
type LockstepError struct {
	Err string
}

// New returns a new LockstepError with a message formatted from the arguments passed.
func New(format string, args ...interface{}) *LockstepError {
	if len(args) == 0 {
		return &LockstepError{Err: format}
	}
	return &LockstepError{Err: fmt.Sprintf(format, args...)}
}

func (e *LockstepError) Error() string {
	return e.Err
}
