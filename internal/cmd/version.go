package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/fundplan/internal/render"
	"github.com/felixgeelhaar/fundplan/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print version information including version number, git commit,
build date, Go version, and platform.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

var versionFlags struct {
	verbose bool
	json    bool
}

func init() {
	versionCmd.Flags().BoolVarP(&versionFlags.verbose, "verbose", "v", false, "show detailed version information")
	versionCmd.Flags().BoolVar(&versionFlags.json, "json", false, "output version information as JSON")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := version.GetInfo()
	w := cmd.OutOrStdout()

	if versionFlags.json {
		return render.Value(w, info, render.FormatJSON)
	}
	if versionFlags.verbose {
		writeLine(w, info.String())
		return nil
	}
	writeLine(w, fmt.Sprintf("fundplan %s", info.Short()))
	return nil
}
