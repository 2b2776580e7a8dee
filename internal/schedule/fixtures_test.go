package schedule

import (
	"github.com/felixgeelhaar/fundplan/internal/catalog"
	"github.com/felixgeelhaar/fundplan/internal/domain"
)

var testPhases = []catalog.Phase{
	{ID: "prep", Name: "Preparation", Color: "#111111"},
	{ID: "raise", Name: "Raise", Color: "#222222"},
	{ID: "after", Name: "After", Color: "#333333"},
}

// testCatalog is small enough to date by hand:
//
//	a     prep  10d  2025-02-21 .. 2025-03-02
//	b     prep   5d  2025-03-03 .. 2025-03-07
//	fc    raise  3d  2025-03-08 .. 2025-03-10  first close
//	c     raise  4d  2025-03-11 .. 2025-03-14
//	fin   raise  2d  2025-03-15 .. 2025-03-20  final close (forced)
//	t     after  5d  2025-03-21 .. 2025-03-25
func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Schema: "fundplan.catalog/v1",
		Phases: testPhases,
		Milestones: []catalog.Milestone{
			{ID: "a", Name: "A", Phase: "prep", Owner: "GP", Categories: []string{"strategy"}, BaseDurationDays: 10},
			{ID: "b", Name: "B", Phase: "prep", Owner: "Counsel", Categories: []string{"legal", "regulatory"}, BaseDurationDays: 5},
			{ID: "fc", Name: "First close", Phase: "raise", BaseDurationDays: 3, Anchor: catalog.AnchorFirstClose},
			{ID: "c", Name: "C", Phase: "raise", BaseDurationDays: 4},
			{ID: "fin", Name: "Final close", Phase: "raise", BaseDurationDays: 2, Anchor: catalog.AnchorFinalClose},
			{ID: "t", Name: "T", Phase: "after", BaseDurationDays: 5},
		},
		Scope: catalog.Scope{
			DraftMaterialsSkip: []string{"a"},
			LateStagePhases:    []string{"raise", "after"},
			KeyMilestones:      []string{"b", "fc", "fin"},
		},
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.FirstClose = domain.MustParseDate("2025-03-10")
	cfg.FinalClose = domain.MustParseDate("2025-03-20")
	return cfg
}

func unadjusted(milestones []catalog.Milestone) []AdjustedMilestone {
	return Adjust(milestones, DefaultConfig())
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}
	return out
}

func adjustedIDs(ms []AdjustedMilestone) []string {
	return ids(ms, func(m AdjustedMilestone) string { return m.ID })
}

func datedByID(ms []DatedMilestone) map[string]DatedMilestone {
	out := make(map[string]DatedMilestone, len(ms))
	for _, m := range ms {
		out[m.ID] = m
	}
	return out
}
