package main

import (
	"errors"
	"os"

	remder "github.com/alnah/go-remder"
)

// ErrUsage marks invalid invocations (flags, config).
var ErrUsage = errors.New("invalid usage")

// Exit codes for the remder CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags or config
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrUsage) || errors.Is(err, ErrNoInputFile) {
		return ExitUsage
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadDocument) ||
		errors.Is(err, remder.ErrPageCache) {
		return ExitIO
	}

	return ExitGeneral
}
