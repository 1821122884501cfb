package app

import (
	"errors"
	"fmt"
)

// Exit statuses.
const (
	ExitOK          = 0
	ExitCheckFailed = 1
	ExitInvalidCall = 2
)

// ErrCheckFailed is returned by check when packages lack a marker file.
// The missing packages have already been reported when it is returned.
var ErrCheckFailed = errors.New("check failed")

// UsageError is a bad command line: unknown command, wrong argument count
// or an invalid flag.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// ExitCode maps an Execute error to a process exit status. Filesystem and
// template failures are fatal and share status 1 with a failed check.
func ExitCode(err error) int {
	var usageErr *UsageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usageErr):
		return ExitInvalidCall
	default:
		return ExitCheckFailed
	}
}
