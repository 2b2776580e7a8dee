package log

import (
	"io"
	"os"
	"strings"
)

// Format represents the output format for logs
type Format int

const (
	// FormatText outputs human-readable key=value lines
	FormatText Format = iota
	// FormatJSON outputs one JSON object per line
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses a format name, defaulting to text
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Config holds configuration for the logger
type Config struct {
	// Level is the minimum log level to output
	Level Level

	// Format is the output format (JSON or Text)
	Format Format

	// Output is where logs are written; nil means stderr
	Output io.Writer

	// AddSource includes source file and line number in logs
	AddSource bool

	// ServiceName is attached to every record
	ServiceName string
}

// DefaultConfig logs warnings and above as text to stderr, keeping stdout
// free for schedule output.
func DefaultConfig() Config {
	return Config{
		Level:       LevelWarn,
		Format:      FormatText,
		Output:      os.Stderr,
		ServiceName: "fundplan",
	}
}

// ServerConfig logs requests at info level as JSON, for `fundplan serve`.
func ServerConfig() Config {
	return Config{
		Level:       LevelInfo,
		Format:      FormatJSON,
		Output:      os.Stderr,
		ServiceName: "fundplan",
	}
}

// FromSettings builds a Config from the string values found in the
// application config file or flags. Empty values keep the defaults of base.
func FromSettings(base Config, level, format string) Config {
	if level != "" {
		base.Level = ParseLevel(level)
	}
	if format != "" {
		base.Format = ParseFormat(format)
	}
	return base
}
