package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/fundplan/internal/domain"
	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
	"github.com/felixgeelhaar/fundplan/internal/render"
	"github.com/felixgeelhaar/fundplan/internal/schedule"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a fund formation timeline",
	Long: `Compute a dated fund formation timeline.

Options start from neutral defaults, then the preset (--preset, or
defaults.preset in config) is applied, then any option flag overrides it.
The first and final close dates are always required.

Unrecognised option values are accepted with a warning and scheduled
without adjustment.`,
	Example: `  # Cayman venture fund, committed anchor, drafts already done
  fundplan plan --first-close 2026-03-02 --final-close 2026-09-30 \
    --anchor-status committed --starting-point have-draft-materials

  # Key milestones only, from a preset, as JSON
  fundplan plan --preset fund-ii --detail-level simple \
    --first-close 2026-03-02 --final-close 2026-09-30 --format json

  # Flat rows for a spreadsheet
  fundplan plan --first-close 2026-03-02 --final-close 2026-09-30 --format rows --no-color`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

var planFlags struct {
	preset        string
	strategy      string
	fundSize      string
	jurisdiction  string
	anchorStatus  string
	startingPoint string
	detailLevel   string
	firstClose    string
	finalClose    string
	format        string
	noColor       bool
	out           string
}

func init() {
	f := planCmd.Flags()
	f.StringVar(&planFlags.preset, "preset", "", "preset to apply before the option flags (see 'fundplan preset list')")
	f.StringVar(&planFlags.strategy, "strategy", "", "venture-capital, private-equity, private-credit, real-estate, infrastructure")
	f.StringVar(&planFlags.fundSize, "fund-size", "", "under-50m, 50m-250m, 250m-1b, over-1b")
	f.StringVar(&planFlags.jurisdiction, "jurisdiction", "", "delaware, cayman, luxembourg, multi-jurisdiction")
	f.StringVar(&planFlags.anchorStatus, "anchor-status", "", "committed, in-discussion, none")
	f.StringVar(&planFlags.startingPoint, "starting-point", "", "from-scratch, have-draft-materials, close-to-first-close")
	f.StringVar(&planFlags.detailLevel, "detail-level", "", "simple, detailed")
	f.StringVar(&planFlags.firstClose, "first-close", "", "target first close date (YYYY-MM-DD)")
	f.StringVar(&planFlags.finalClose, "final-close", "", "target final close date (YYYY-MM-DD)")
	f.StringVarP(&planFlags.format, "format", "f", "", "output format: table, rows, json, yaml (default from config, else table)")
	f.BoolVar(&planFlags.noColor, "no-color", false, "disable colored output")
	f.StringVar(&planFlags.out, "out", "", "write the output to a file instead of stdout")

	_ = planCmd.MarkFlagRequired("first-close")
	_ = planCmd.MarkFlagRequired("final-close")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	cfg, err := buildScheduleConfig(cmd)
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(firstNonEmpty(planFlags.format, currentConfig().Defaults.Format, string(render.FormatTable)))
	if err != nil {
		return err
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}

	for _, warning := range cfg.Unrecognized() {
		logger.Warn("unrecognized option, scheduling without adjustment", "warning", warning)
	}

	sched := schedule.NewScheduler(c, schedule.WithLogger(logger)).Compute(cfg)

	w := cmd.OutOrStdout()
	if planFlags.out != "" {
		file, err := os.Create(planFlags.out)
		if err != nil {
			return fperrors.Wrap(fperrors.ErrCodeFileWriteFailed, "failed to create "+planFlags.out, err)
		}
		defer file.Close()
		w = file
	}

	if err := render.Schedule(w, sched, format, render.Options{NoColor: planFlags.noColor}); err != nil {
		return err
	}
	if planFlags.out != "" {
		logger.Info("schedule written", "path", planFlags.out, "schedule_id", sched.ID.String())
	}
	return nil
}

// buildScheduleConfig layers defaults, the preset and explicitly set flags.
func buildScheduleConfig(cmd *cobra.Command) (schedule.Config, error) {
	cfg := schedule.DefaultConfig()

	if name := firstNonEmpty(planFlags.preset, currentConfig().Defaults.Preset); name != "" {
		p, err := newPresetLoader().Load(name)
		if err != nil {
			return schedule.Config{}, err
		}
		cfg = p.Apply(cfg)
		logger.Debug("preset applied", "preset", p.Name, "source", p.Source)
	}

	flags := cmd.Flags()
	if flags.Changed("strategy") {
		cfg.Strategy = domain.Strategy(planFlags.strategy)
	}
	if flags.Changed("fund-size") {
		cfg.FundSize = domain.FundSizeBand(planFlags.fundSize)
	}
	if flags.Changed("jurisdiction") {
		cfg.Jurisdiction = domain.Jurisdiction(planFlags.jurisdiction)
	}
	if flags.Changed("anchor-status") {
		cfg.AnchorStatus = domain.AnchorStatus(planFlags.anchorStatus)
	}
	if flags.Changed("starting-point") {
		cfg.StartingPoint = domain.StartingPoint(planFlags.startingPoint)
	}
	if flags.Changed("detail-level") {
		cfg.DetailLevel = domain.DetailLevel(planFlags.detailLevel)
	}

	var err error
	if cfg.FirstClose, err = parseDateFlag("--first-close", planFlags.firstClose); err != nil {
		return schedule.Config{}, err
	}
	if cfg.FinalClose, err = parseDateFlag("--final-close", planFlags.finalClose); err != nil {
		return schedule.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return schedule.Config{}, err
	}
	return cfg, nil
}

func parseDateFlag(name, value string) (domain.Date, error) {
	if value == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, fperrors.NewDateInvalidError(name, err)
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// writeLine writes s and a newline, ignoring write errors on the terminal.
func writeLine(w io.Writer, s string) {
	_, _ = io.WriteString(w, s+"\n")
}
