package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/fundplan/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View fundplan configuration",
	Long: `Show the effective configuration and where it is read from.

Configuration files are layered, later ones winning:
  built-in defaults
  ~/.fundplan/config.yaml
  ./.fundplan/config.yaml

Example file:

  logging:
    level: info
    format: json
  server:
    address: ":9090"
    request_timeout: 5s
  catalog:
    path: ./catalog.yaml
  defaults:
    preset: fund-ii
    format: rows
  cache:
    size: 512`,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigView,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file paths, lowest precedence first",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigView(cmd *cobra.Command, _ []string) error {
	data, err := config.Marshal(currentConfig())
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	if rootFlags.configPath != "" {
		writeLine(w, rootFlags.configPath)
		return nil
	}
	for _, path := range newConfigLoader().Paths() {
		writeLine(w, path)
	}
	return nil
}
