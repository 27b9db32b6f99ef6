// internal/cli/exit.go
package cli

import (
	"errors"
	"fmt"
	"io"

	"pblast/internal/appcore"
)

// ExitError carries a process exit code out of a command. A nil Err means
// the failure was already reported.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func usagef(format string, a ...any) error {
	return &ExitError{Code: appcore.ExitUsage, Err: fmt.Errorf(format, a...)}
}

// inputErr marks a failure to load user-supplied input.
func inputErr(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: appcore.ExitUsage, Err: err}
}

// runtimeErr classifies err by its cause.
func runtimeErr(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: appcore.Classify(err), Err: err}
}

func exitCode(code int) error {
	if code == appcore.ExitOK {
		return nil
	}
	return &ExitError{Code: code}
}

// ExitCode reports err on stderr and maps it to a process exit code. Errors
// that are not ExitErrors come from argument parsing.
func ExitCode(err error, stderr io.Writer) int {
	if err == nil {
		return appcore.ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		if ee.Err != nil {
			fmt.Fprintln(stderr, "error:", ee.Err)
		}
		return ee.Code
	}
	fmt.Fprintln(stderr, "error:", err)
	fmt.Fprintln(stderr, "Run 'pblast --help' for usage.")
	return appcore.ExitUsage
}
