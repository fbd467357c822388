// Package clierr carries process exit codes through the error chain so
// main stays a one-liner and commands never call os.Exit themselves.
package clierr

import (
	"errors"
	"fmt"
)

// Exit codes used by the linter.
const (
	// CodeLintFailed is returned when the input validated but findings
	// classified as errors were reported.
	CodeLintFailed = 1
	// CodeUsage is returned for unreadable inputs, bad schemas and
	// other problems that prevent linting from running at all.
	CodeUsage = 2
)

// ExitCoder is an error that carries an explicit process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError is the canonical ExitCoder. It supports wrapping via Unwrap
// so errors.Is/As work as expected.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

// Unwrap enables errors.Is/As to traverse the underlying cause.
func (e *ExitError) Unwrap() error { return e.cause }

// New creates an ExitError with a message.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Newf is a formatted variant.
func Newf(code int, format string, args ...any) error {
	return &ExitError{code: normalize(code), msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an ExitError that wraps an underlying cause.
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}

func normalize(code int) int {
	// Exit code 0 means success; errors should never be 0.
	if code <= 0 {
		return 1
	}
	return code
}
