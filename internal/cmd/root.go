package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/fundplan/internal/catalog"
	"github.com/felixgeelhaar/fundplan/internal/config"
	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
	"github.com/felixgeelhaar/fundplan/internal/log"
	"github.com/felixgeelhaar/fundplan/internal/preset"
)

var rootCmd = &cobra.Command{
	Use:   "fundplan",
	Short: "Fund formation timeline scheduler",
	Long: `fundplan builds a dated fund formation timeline from a milestone catalog.

Give it your first close and final close dates and a few facts about the
fund (strategy, size, jurisdiction, anchor investor status, how far along
you are) and it adjusts milestone durations, filters what is in scope and
works the dates backwards and forwards from the two closes.

Settings are read from ~/.fundplan/config.yaml and ./.fundplan/config.yaml,
presets from ~/.fundplan/presets.yaml and ./.fundplan/presets.yaml.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var rootFlags struct {
	logLevel    string
	logFormat   string
	catalogPath string
	configPath  string
}

// Set by setup before any command runs.
var (
	appConfig *config.Config
	logger    = log.Discard()
)

// Replaced in tests to point at temporary directories.
var (
	newConfigLoader = config.NewLoader
	newPresetLoader = preset.NewLoader
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config, else warn)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "", "log format: text, json (default from config, else text)")
	pf.StringVar(&rootFlags.catalogPath, "catalog", "", "milestone catalog file replacing the built-in catalog")
	pf.StringVar(&rootFlags.configPath, "config", "", "config file to use instead of ~/.fundplan and ./.fundplan")
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// Logger returns the logger configured for the last command run.
func Logger() *log.Logger {
	return logger
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	appConfig = cfg

	logCfg := log.FromSettings(log.DefaultConfig(), cfg.Logging.Level, cfg.Logging.Format)
	logCfg = log.FromSettings(logCfg, rootFlags.logLevel, rootFlags.logFormat)
	logCfg.Output = cmd.ErrOrStderr()
	logger = log.New(logCfg)
	log.SetDefaultLogger(logger)

	logger.Debug("configuration loaded", "command", cmd.CommandPath())
	return nil
}

func loadAppConfig() (*config.Config, error) {
	if rootFlags.configPath == "" {
		return newConfigLoader().Load()
	}

	layer, err := config.LoadFile(rootFlags.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, configFileNotFound(rootFlags.configPath)
		}
		return nil, err
	}
	cfg := config.Default().Merge(layer)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFileNotFound(path string) error {
	return fperrors.New(fperrors.ErrCodeConfigFileInvalid, "config file not found: "+path).
		WithSuggestion("Run 'fundplan config path' to see where config files are looked up")
}

// currentConfig returns the loaded application config, or the defaults
// when a command runs without the root pre-run (as in unit tests).
func currentConfig() *config.Config {
	if appConfig == nil {
		return config.Default()
	}
	return appConfig
}

// loadCatalog loads the catalog named by --catalog, then config, then the
// built-in one.
func loadCatalog() (*catalog.Catalog, error) {
	path := rootFlags.catalogPath
	if path == "" {
		path = currentConfig().Catalog.Path
	}

	c, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	source := path
	if source == "" {
		source = "built-in"
	}
	logger.Debug("catalog loaded",
		"source", source,
		"fingerprint", c.Fingerprint(),
		"milestones", len(c.Milestones),
	)
	return c, nil
}
