// Package exitcode maps command errors to process exit codes.
package exitcode

import (
	"context"
	"errors"
	"os"
	"strings"

	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ConfigError indicates invalid schedule options, presets or config files
	ConfigError = 3

	// CatalogError indicates a missing or invalid milestone catalog
	CatalogError = 4

	// Interrupted indicates the command was cancelled by SIGINT/SIGTERM
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode returns the exit code for err. Coded errors map by
// category; cobra's uncoded flag and argument errors are recognised by
// their message.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if errors.Is(err, context.Canceled) {
		return Interrupted
	}

	if code, ok := fperrors.CodeOf(err); ok {
		switch code.Category() {
		case "CONFIG", "PRESET":
			return ConfigError
		case "CATALOG":
			return CatalogError
		default:
			return GeneralError
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"invalid argument",
		"unknown command",
		"required flag",
		"flag needs an argument",
		"accepts ",
		"requires at least",
	} {
		if strings.Contains(errMsg, marker) {
			return UsageError
		}
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ConfigError:
		return "Configuration error"
	case CatalogError:
		return "Catalog error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
