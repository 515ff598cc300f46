package cli

import (
	"errors"
	"fmt"
)

// ExitError lets a RunE function choose the process exit code without
// calling os.Exit, so commands stay testable. [Execute] maps it to the code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an [ExitError] with the given exit code
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// IsExitError extracts the exit code when err is, or wraps, an [ExitError]
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
