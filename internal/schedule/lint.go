package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/fundplan/internal/catalog"
	"github.com/felixgeelhaar/fundplan/internal/domain"
)

// shortestConfig applies every shortening factor.
var shortestConfig = Config{
	AnchorStatus: domain.AnchorCommitted,
	Jurisdiction: domain.JurisdictionDelaware,
	FundSize:     domain.FundSizeUnder50M,
}

// Lint reports catalog content that is valid but schedules badly: durations
// that floor to zero days under the shortest factors, and scope sets that
// drop an anchor milestone and so leave milestones undated.
func Lint(c *catalog.Catalog) []string {
	var warnings []string

	for _, m := range Adjust(c.Milestones, shortestConfig) {
		if m.DurationDays < 1 {
			warnings = append(warnings, fmt.Sprintf(
				"milestone %q (base %d days) adjusts to %d days with committed anchor, %s and %s",
				m.ID, m.BaseDurationDays, m.DurationDays, shortestConfig.Jurisdiction, shortestConfig.FundSize))
		}
	}

	keys := toSet(c.Scope.KeyMilestones)
	skip := toSet(c.Scope.DraftMaterialsSkip)
	late := toSet(c.Scope.LateStagePhases)
	for _, m := range c.Milestones {
		if m.Anchor == catalog.AnchorNone {
			continue
		}
		if len(keys) > 0 && !keys[m.ID] {
			warnings = append(warnings, fmt.Sprintf("scope.key_milestones omits %s milestone %q", m.Anchor, m.ID))
		}
		if skip[m.ID] {
			warnings = append(warnings, fmt.Sprintf("scope.draft_materials_skip removes %s milestone %q", m.Anchor, m.ID))
		}
		if len(late) > 0 && !late[m.Phase] {
			warnings = append(warnings, fmt.Sprintf("scope.late_stage_phases excludes phase %q of %s milestone %q", m.Phase, m.Anchor, m.ID))
		}
	}

	return warnings
}
