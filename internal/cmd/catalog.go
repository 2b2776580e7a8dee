package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/fundplan/internal/render"
	"github.com/felixgeelhaar/fundplan/internal/schedule"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate the milestone catalog",
	Long: `Inspect the milestone catalog the scheduler works from. With --catalog (or
catalog.path in config) a custom catalog file replaces the built-in one.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog milestones in schedule order",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the catalog and report lint warnings",
	Long: `Validate the catalog structure, then lint it for option combinations that
would produce surprising schedules, such as a scope set that drops an
anchor milestone. Structural problems fail the command; lint warnings do
not.`,
	Args: cobra.NoArgs,
	RunE: runCatalogValidate,
}

var catalogFlags struct {
	format  string
	noColor bool
}

func init() {
	catalogCmd.PersistentFlags().StringVarP(&catalogFlags.format, "format", "f", "table", "output format: table, json, yaml")
	catalogCmd.PersistentFlags().BoolVar(&catalogFlags.noColor, "no-color", false, "disable colored output")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	format, err := render.ParseFormat(catalogFlags.format)
	if err != nil {
		return err
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}

	if format == render.FormatJSON || format == render.FormatYAML {
		return render.Value(cmd.OutOrStdout(), c, format)
	}

	rows := make([][]string, 0, len(c.Milestones))
	for _, m := range c.Milestones {
		rows = append(rows, []string{
			m.ID,
			m.Phase,
			strconv.Itoa(m.BaseDurationDays),
			scalingFlags(m.ScalesWithAnchorStatus, m.ScalesWithJurisdiction, m.ScalesWithFundSize),
			string(m.Anchor),
			m.Owner,
		})
	}
	return render.List(cmd.OutOrStdout(),
		[]string{"ID", "Phase", "Base days", "Scales with", "Anchor", "Owner"}, rows,
		render.Options{NoColor: catalogFlags.noColor})
}

func scalingFlags(anchor, jurisdiction, fundSize bool) string {
	var parts []string
	if anchor {
		parts = append(parts, "anchor")
	}
	if jurisdiction {
		parts = append(parts, "jurisdiction")
	}
	if fundSize {
		parts = append(parts, "fund size")
	}
	return strings.Join(parts, ", ")
}

func runCatalogValidate(cmd *cobra.Command, _ []string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	warnings := schedule.Lint(c)
	w := cmd.OutOrStdout()
	writeLine(w, fmt.Sprintf("catalog is valid: %d milestones in %d phases", len(c.Milestones), len(c.Phases)))
	writeLine(w, "fingerprint: "+c.Fingerprint())
	for _, warning := range warnings {
		writeLine(w, "warning: "+warning)
	}
	if len(warnings) > 0 {
		logger.Warn("catalog has lint warnings", "count", len(warnings))
	}
	return nil
}
