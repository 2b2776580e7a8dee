package preset

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
)

//go:embed builtin/presets.yaml
var builtinPresets embed.FS

// FileName is the presets file looked up in the user and project directories.
const FileName = "presets.yaml"

// Preset sources
const (
	SourceBuiltin = "builtin"
	SourceUser    = "user"
	SourceProject = "project"
)

// Loader resolves presets from the built-in file, the user directory and
// the project directory.
type Loader struct {
	// projectDir holds ./.fundplan/presets.yaml
	projectDir string

	// userDir holds ~/.fundplan/presets.yaml
	userDir string

	mu    sync.Mutex
	cache map[string]*Preset
}

// NewLoader creates a loader using ~/.fundplan and ./.fundplan.
func NewLoader() *Loader {
	homeDir, _ := os.UserHomeDir()

	return &Loader{
		projectDir: ".fundplan",
		userDir:    filepath.Join(homeDir, ".fundplan"),
		cache:      make(map[string]*Preset),
	}
}

// SetProjectDir sets the directory holding project-level presets.
func (l *Loader) SetProjectDir(dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.projectDir = dir
	l.cache = make(map[string]*Preset)
}

// SetUserDir sets the directory holding user-level presets.
func (l *Loader) SetUserDir(dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.userDir = dir
	l.cache = make(map[string]*Preset)
}

// Load resolves a preset by name.
//
// Resolution order (highest to lowest precedence):
// 1. Project-level preset (./.fundplan/presets.yaml)
// 2. User-level preset (~/.fundplan/presets.yaml)
// 3. Built-in preset (embedded in binary)
//
// Layers merge field by field, so a project file can adjust one option of
// a built-in preset. A name defined only in a user or project file is
// also valid.
func (l *Loader) Load(name string) (*Preset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.cache[name]; ok {
		return cached, nil
	}

	layers, err := l.collections()
	if err != nil {
		return nil, err
	}

	var resolved *Preset
	for _, layer := range layers {
		p, ok := layer.collection.Presets[name]
		if !ok {
			continue
		}
		p.Name = name
		p.Source = layer.source
		if resolved == nil {
			resolved = &p
		} else {
			resolved = resolved.Merge(&p)
		}
	}
	if resolved == nil {
		return nil, fperrors.NewPresetUnknownError(name)
	}

	if err := resolved.Validate(); err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodePresetInvalid, "invalid preset "+name, err).
			WithSuggestion("Check the option values in " + FileName)
	}

	l.cache[name] = resolved
	return resolved, nil
}

// List returns every resolvable preset, sorted by name.
func (l *Loader) List() ([]*Preset, error) {
	l.mu.Lock()
	layers, err := l.collections()
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool)
	for _, layer := range layers {
		for name := range layer.collection.Presets {
			names[name] = true
		}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	presets := make([]*Preset, 0, len(sorted))
	for _, name := range sorted {
		p, err := l.Load(name)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, nil
}

type layer struct {
	source     string
	collection *Collection
}

// collections returns the preset files from lowest to highest precedence.
// Missing user or project files are skipped; unreadable ones are errors.
func (l *Loader) collections() ([]layer, error) {
	data, err := builtinPresets.ReadFile("builtin/presets.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in presets: %w", err)
	}
	builtin, err := parseCollection(data, "built-in presets")
	if err != nil {
		return nil, err
	}

	layers := []layer{{source: SourceBuiltin, collection: builtin}}
	for _, candidate := range []struct {
		source string
		dir    string
	}{
		{SourceUser, l.userDir},
		{SourceProject, l.projectDir},
	} {
		if candidate.dir == "" {
			continue
		}
		path := filepath.Join(candidate.dir, FileName)
		c, err := parseYAMLFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		layers = append(layers, layer{source: candidate.source, collection: c})
	}
	return layers, nil
}

// parseYAMLFile reads a presets file, expanding environment variables.
func parseYAMLFile(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseCollection([]byte(os.ExpandEnv(string(data))), path)
}

func parseCollection(data []byte, source string) (*Collection, error) {
	var c Collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fperrors.NewFileUnmarshalError(source, "YAML", err)
	}
	if c.Schema != "" && !strings.HasPrefix(c.Schema, "fundplan.presets/v") {
		return nil, fperrors.New(fperrors.ErrCodePresetInvalid, fmt.Sprintf("unsupported presets schema version %s in %s", c.Schema, source))
	}
	return &c, nil
}
