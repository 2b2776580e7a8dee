// Package config loads the fundplan application configuration: logging,
// HTTP server, catalog override, command defaults and cache sizing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
)

// FileName is the config file looked up in the user and project directories.
const FileName = "config.yaml"

// DirName is the per-user and per-project configuration directory.
const DirName = ".fundplan"

// Config is the application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Cache    CacheConfig    `yaml:"cache"`
}

// LoggingConfig selects log level and format
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format,omitempty"` // "text", "json"
}

// ServerConfig configures `fundplan serve`
type ServerConfig struct {
	Address         string        `yaml:"address,omitempty"`
	RequestTimeout  time.Duration `yaml:"request_timeout,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// CatalogConfig points at a catalog file replacing the built-in one
type CatalogConfig struct {
	Path string `yaml:"path,omitempty"`
}

// DefaultsConfig holds defaults for `fundplan plan`
type DefaultsConfig struct {
	Preset string `yaml:"preset,omitempty"`
	Format string `yaml:"format,omitempty"` // "table", "json", "yaml", "rows"
}

// CacheConfig sizes the schedule cache used by the server
type CacheConfig struct {
	Size int `yaml:"size,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Server: ServerConfig{
			Address:         ":8080",
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Defaults: DefaultsConfig{
			Format: "table",
		},
		Cache: CacheConfig{
			Size: 256,
		},
	}
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fperrors.New(fperrors.ErrCodeConfigFileInvalid, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fperrors.New(fperrors.ErrCodeConfigFileInvalid, fmt.Sprintf("logging.format %q is not one of text, json", c.Logging.Format))
	}
	switch c.Defaults.Format {
	case "", "table", "json", "yaml", "rows":
	default:
		return fperrors.New(fperrors.ErrCodeConfigFileInvalid, fmt.Sprintf("defaults.format %q is not one of table, json, yaml, rows", c.Defaults.Format))
	}
	if c.Server.RequestTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fperrors.New(fperrors.ErrCodeConfigFileInvalid, "server timeouts cannot be negative")
	}
	if c.Cache.Size < 0 {
		return fperrors.New(fperrors.ErrCodeConfigFileInvalid, "cache.size cannot be negative")
	}
	return nil
}

// Merge returns a copy of c with the non-zero fields of other layered on top.
func (c *Config) Merge(other *Config) *Config {
	merged := *c

	if other.Logging.Level != "" {
		merged.Logging.Level = other.Logging.Level
	}
	if other.Logging.Format != "" {
		merged.Logging.Format = other.Logging.Format
	}
	if other.Server.Address != "" {
		merged.Server.Address = other.Server.Address
	}
	if other.Server.RequestTimeout != 0 {
		merged.Server.RequestTimeout = other.Server.RequestTimeout
	}
	if other.Server.ShutdownTimeout != 0 {
		merged.Server.ShutdownTimeout = other.Server.ShutdownTimeout
	}
	if other.Catalog.Path != "" {
		merged.Catalog.Path = other.Catalog.Path
	}
	if other.Defaults.Preset != "" {
		merged.Defaults.Preset = other.Defaults.Preset
	}
	if other.Defaults.Format != "" {
		merged.Defaults.Format = other.Defaults.Format
	}
	if other.Cache.Size != 0 {
		merged.Cache.Size = other.Cache.Size
	}

	return &merged
}

// Loader resolves configuration from the user and project directories.
type Loader struct {
	userDir    string
	projectDir string
}

// NewLoader creates a loader using ~/.fundplan and ./.fundplan.
func NewLoader() *Loader {
	homeDir, _ := os.UserHomeDir()
	return &Loader{
		userDir:    filepath.Join(homeDir, DirName),
		projectDir: DirName,
	}
}

// NewLoaderWithDirs creates a loader with explicit directories. An empty
// directory is skipped.
func NewLoaderWithDirs(userDir, projectDir string) *Loader {
	return &Loader{userDir: userDir, projectDir: projectDir}
}

// Paths returns the candidate config files, lowest precedence first.
func (l *Loader) Paths() []string {
	var paths []string
	for _, dir := range []string{l.userDir, l.projectDir} {
		if dir != "" {
			paths = append(paths, filepath.Join(dir, FileName))
		}
	}
	return paths
}

// Load resolves the configuration.
//
// Resolution order (highest to lowest precedence):
// 1. Project-level config (./.fundplan/config.yaml)
// 2. User-level config (~/.fundplan/config.yaml)
// 3. Built-in defaults
//
// Missing files are skipped. Environment variables in files are expanded.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()
	for _, path := range l.Paths() {
		layer, err := LoadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		cfg = cfg.Merge(layer)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads one config file without applying defaults. A missing file
// yields an error satisfying os.IsNotExist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fperrors.Wrap(fperrors.ErrCodeFileReadFailed, "failed to read config file "+path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fperrors.NewFileUnmarshalError(path, "YAML", err)
	}
	return &cfg, nil
}

// Marshal renders the configuration as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeFileMarshal, "failed to marshal config", err)
	}
	return data, nil
}
