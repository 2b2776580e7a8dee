package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/fundplan/internal/render"
	"github.com/felixgeelhaar/fundplan/internal/schedule"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "List and inspect option presets",
	Long: `Presets are named bundles of schedule options. Built-in presets ship with
fundplan; ~/.fundplan/presets.yaml and ./.fundplan/presets.yaml can add
presets or override single options of existing ones.`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetList,
}

var presetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a preset and the options it resolves to",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetShow,
}

var presetFlags struct {
	format  string
	noColor bool
}

func init() {
	presetCmd.PersistentFlags().StringVarP(&presetFlags.format, "format", "f", "table", "output format: table, json, yaml")
	presetCmd.PersistentFlags().BoolVar(&presetFlags.noColor, "no-color", false, "disable colored output")

	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetShowCmd)
	rootCmd.AddCommand(presetCmd)
}

func runPresetList(cmd *cobra.Command, _ []string) error {
	format, err := render.ParseFormat(presetFlags.format)
	if err != nil {
		return err
	}

	presets, err := newPresetLoader().List()
	if err != nil {
		return err
	}

	if format == render.FormatJSON || format == render.FormatYAML {
		return render.Value(cmd.OutOrStdout(), presets, format)
	}

	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		rows = append(rows, []string{p.Name, p.Source, p.Description})
	}
	return render.List(cmd.OutOrStdout(), []string{"Name", "Source", "Description"}, rows,
		render.Options{NoColor: presetFlags.noColor})
}

// presetView is a preset together with the options it yields on top of
// the defaults.
type presetView struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Source      string          `json:"source" yaml:"source"`
	Resolved    resolvedOptions `json:"resolved" yaml:"resolved"`
}

type resolvedOptions struct {
	Strategy      string `json:"strategy" yaml:"strategy"`
	FundSize      string `json:"fund_size" yaml:"fund_size"`
	Jurisdiction  string `json:"jurisdiction" yaml:"jurisdiction"`
	AnchorStatus  string `json:"anchor_status" yaml:"anchor_status"`
	StartingPoint string `json:"starting_point" yaml:"starting_point"`
	DetailLevel   string `json:"detail_level" yaml:"detail_level"`
}

func runPresetShow(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(presetFlags.format)
	if err != nil {
		return err
	}

	p, err := newPresetLoader().Load(args[0])
	if err != nil {
		return err
	}

	cfg := p.Apply(schedule.DefaultConfig())
	view := presetView{
		Name:        p.Name,
		Description: p.Description,
		Source:      p.Source,
		Resolved: resolvedOptions{
			Strategy:      string(cfg.Strategy),
			FundSize:      string(cfg.FundSize),
			Jurisdiction:  string(cfg.Jurisdiction),
			AnchorStatus:  string(cfg.AnchorStatus),
			StartingPoint: string(cfg.StartingPoint),
			DetailLevel:   string(cfg.DetailLevel),
		},
	}

	if format == render.FormatJSON || format == render.FormatYAML {
		return render.Value(cmd.OutOrStdout(), view, format)
	}

	w := cmd.OutOrStdout()
	writeLine(w, p.Name+" ("+p.Source+")")
	writeLine(w, p.Description)
	writeLine(w, "")
	return render.List(w, []string{"Option", "Value"}, [][]string{
		{"strategy", view.Resolved.Strategy},
		{"fund_size", view.Resolved.FundSize},
		{"jurisdiction", view.Resolved.Jurisdiction},
		{"anchor_status", view.Resolved.AnchorStatus},
		{"starting_point", view.Resolved.StartingPoint},
		{"detail_level", view.Resolved.DetailLevel},
	}, render.Options{NoColor: presetFlags.noColor})
}
