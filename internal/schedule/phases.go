package schedule

import (
	"sort"

	"github.com/felixgeelhaar/fundplan/internal/catalog"
)

// GroupIntoPhases collects scheduled milestones under their phase, in the
// canonical order of phases, and derives each phase's span from its
// milestones. Empty phases are omitted. The result is then stably sorted by
// start date, so overlapping or reordered phases follow the calendar rather
// than the canonical order.
func GroupIntoPhases(milestones []DatedMilestone, phases []catalog.Phase) []Phase {
	out := make([]Phase, 0, len(phases))

	for _, meta := range phases {
		var group []DatedMilestone
		for _, m := range milestones {
			if m.Phase == meta.ID && m.Scheduled() {
				group = append(group, m)
			}
		}
		if len(group) == 0 {
			continue
		}

		p := Phase{
			ID:          meta.ID,
			Name:        meta.Name,
			Description: meta.Description,
			Color:       meta.Color,
			Start:       group[0].Start,
			End:         group[0].End,
			Milestones:  group,
		}
		for _, m := range group[1:] {
			if m.Start.Before(p.Start) {
				p.Start = m.Start
			}
			if m.End.After(p.End) {
				p.End = m.End
			}
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
