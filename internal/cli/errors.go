package cli

import (
	"errors"
	"strings"
)

// Exit codes returned by MainWithArgs.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks a malformed invocation: wrong arguments, unknown flags or
// values that do not parse.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func asUsage(err error) error {
	if err == nil {
		return nil
	}
	return usageError{err: err}
}

// exitCode classifies err. Engine errors (unknown or duplicate topic, invalid
// value) and runtime failures map to ExitError.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	// cobra reports unknown subcommands with a plain error.
	if strings.HasPrefix(err.Error(), "unknown command") {
		return ExitUsage
	}
	return ExitError
}
