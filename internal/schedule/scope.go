package schedule

import (
	"github.com/felixgeelhaar/fundplan/internal/catalog"
	"github.com/felixgeelhaar/fundplan/internal/domain"
)

// FilterByScope drops milestones that do not apply to the configured
// starting point, then those outside the detail level. The id sets come
// from the catalog scope. Unrecognised values filter nothing.
// Applying the filter to its own output returns the same list.
func FilterByScope(milestones []AdjustedMilestone, cfg Config, scope catalog.Scope) []AdjustedMilestone {
	out := make([]AdjustedMilestone, 0, len(milestones))

	var skip, keepPhases map[string]bool
	switch cfg.StartingPoint {
	case domain.StartHaveDraftMaterials:
		skip = toSet(scope.DraftMaterialsSkip)
	case domain.StartCloseToFirstClose:
		keepPhases = toSet(scope.LateStagePhases)
	}

	var keyOnly map[string]bool
	if cfg.DetailLevel == domain.DetailSimple {
		keyOnly = toSet(scope.KeyMilestones)
	}

	for _, m := range milestones {
		if skip != nil && skip[m.ID] {
			continue
		}
		if keepPhases != nil && !keepPhases[m.Phase] {
			continue
		}
		if keyOnly != nil && !keyOnly[m.ID] {
			continue
		}
		out = append(out, m)
	}
	return out
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
