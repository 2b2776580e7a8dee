package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Catalog errors (CATALOG-001 to CATALOG-099)
	ErrCodeCatalogNotFound      ErrorCode = "CATALOG-001"
	ErrCodeCatalogInvalid       ErrorCode = "CATALOG-002"
	ErrCodeCatalogUnmarshal     ErrorCode = "CATALOG-003"
	ErrCodeCatalogAnchorMissing ErrorCode = "CATALOG-004"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid         ErrorCode = "CONFIG-001"
	ErrCodeConfigAnchorsInverted ErrorCode = "CONFIG-002"
	ErrCodeConfigDateInvalid     ErrorCode = "CONFIG-003"
	ErrCodeConfigFileInvalid     ErrorCode = "CONFIG-004"

	// Preset errors (PRESET-001 to PRESET-099)
	ErrCodePresetUnknown ErrorCode = "PRESET-001"
	ErrCodePresetInvalid ErrorCode = "PRESET-002"

	// Server errors (SERVER-001 to SERVER-099)
	ErrCodeServerBadRequest ErrorCode = "SERVER-001"
	ErrCodeServerStart      ErrorCode = "SERVER-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeFileUnmarshal   ErrorCode = "IO-005"
	ErrCodeFileMarshal     ErrorCode = "IO-006"
)

// Category returns the prefix of the code, e.g. "CONFIG" for "CONFIG-002".
func (c ErrorCode) Category() string {
	s := string(c)
	if i := strings.IndexByte(s, '-'); i > 0 {
		return s[:i]
	}
	return s
}

// FundplanError is an error carrying a code, remediation hints and an optional cause
type FundplanError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *FundplanError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			fmt.Fprintf(&b, "\n  • %s", suggestion)
		}
	}

	if e.DocsURL != "" {
		fmt.Fprintf(&b, "\n\nDocumentation: %s", e.DocsURL)
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FundplanError) Unwrap() error {
	return e.Cause
}

// New creates a new FundplanError
func New(code ErrorCode, message string) *FundplanError {
	return &FundplanError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new FundplanError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *FundplanError {
	return &FundplanError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *FundplanError) WithSuggestion(suggestion string) *FundplanError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *FundplanError) WithSuggestions(suggestions ...string) *FundplanError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *FundplanError) WithDocs(url string) *FundplanError {
	e.DocsURL = url
	return e
}

// CodeOf returns the code of the first FundplanError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var fe *FundplanError
	if errors.As(err, &fe) {
		return fe.Code, true
	}
	return "", false
}

// NewCatalogNotFoundError creates a catalog file not found error
func NewCatalogNotFoundError(path string) *FundplanError {
	return New(ErrCodeCatalogNotFound, fmt.Sprintf("milestone catalog not found: %s", path)).
		WithSuggestion("Omit --catalog to use the built-in catalog").
		WithSuggestion("Check if the file path is correct").
		WithDocs("https://github.com/felixgeelhaar/fundplan#milestone-catalog")
}

// NewCatalogInvalidError creates a catalog validation error
func NewCatalogInvalidError(details string) *FundplanError {
	return New(ErrCodeCatalogInvalid, fmt.Sprintf("invalid milestone catalog: %s", details)).
		WithSuggestion("Run 'fundplan catalog validate --catalog <file>' to see all problems").
		WithSuggestion("Milestones must be listed in schedule order").
		WithDocs("https://github.com/felixgeelhaar/fundplan#milestone-catalog")
}

// NewConfigInvalidError creates a schedule configuration error
func NewConfigInvalidError(details string) *FundplanError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid schedule configuration: %s", details)).
		WithSuggestion("Run 'fundplan plan --help' to see the accepted options")
}

// NewAnchorsInvertedError creates an error for a final close before the first close
func NewAnchorsInvertedError(firstClose, finalClose string) *FundplanError {
	return New(ErrCodeConfigAnchorsInverted, fmt.Sprintf("final close %s is before first close %s", finalClose, firstClose)).
		WithSuggestion("Set --final-close on or after --first-close").
		WithSuggestion("Dates use the YYYY-MM-DD format")
}

// NewDateInvalidError creates a date parsing error for the named input
func NewDateInvalidError(field string, cause error) *FundplanError {
	return Wrap(ErrCodeConfigDateInvalid, fmt.Sprintf("invalid %s", field), cause).
		WithSuggestion("Dates use the YYYY-MM-DD format, e.g. 2025-06-01")
}

// NewPresetUnknownError creates an unknown preset error
func NewPresetUnknownError(preset string) *FundplanError {
	return New(ErrCodePresetUnknown, fmt.Sprintf("unknown preset: %s", preset)).
		WithSuggestion("Run 'fundplan preset list' to see available presets")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *FundplanError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *FundplanError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}
