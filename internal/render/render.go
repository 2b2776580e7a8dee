// Package render writes schedules for people and programs: a phase-grouped
// terminal table, flat export rows, JSON and YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
	"github.com/felixgeelhaar/fundplan/internal/schedule"
)

// Format selects the output representation
type Format string

// Supported formats
const (
	FormatTable Format = "table"
	FormatRows  Format = "rows"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported formats in help-text order.
var Formats = []Format{FormatTable, FormatRows, FormatJSON, FormatYAML}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", fperrors.NewConfigInvalidError(fmt.Sprintf("unknown output format %q", s)).
		WithSuggestion("Use one of: " + strings.Join(names, ", "))
}

// Options tune terminal output
type Options struct {
	// NoColor disables ANSI styling even on a terminal.
	NoColor bool
}

// Schedule writes s to w in the given format.
func Schedule(w io.Writer, s *schedule.Schedule, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, s)
	case FormatYAML:
		return writeYAML(w, s)
	case FormatRows:
		return writeRows(w, s, opts)
	case FormatTable, "":
		return writeTable(w, s, opts)
	default:
		_, err := ParseFormat(string(format))
		return err
	}
}

// Value writes any value as JSON or YAML. Table and rows fall back to YAML.
// Used for catalog, preset and config listings.
func Value(w io.Writer, v any, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, v)
	}
	return writeYAML(w, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fperrors.Wrap(fperrors.ErrCodeFileMarshal, "failed to encode JSON", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fperrors.Wrap(fperrors.ErrCodeFileMarshal, "failed to encode YAML", err)
	}
	if err := enc.Close(); err != nil {
		return fperrors.Wrap(fperrors.ErrCodeFileMarshal, "failed to encode YAML", err)
	}
	return nil
}
