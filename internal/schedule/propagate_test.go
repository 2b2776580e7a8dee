package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/fundplan/internal/domain"
)

func TestAssignDates(t *testing.T) {
	cfg := testConfig()
	dated := AssignDates(unadjusted(testCatalog().Milestones), cfg.FirstClose, cfg.FinalClose)

	want := []struct {
		id, start, end string
	}{
		{"a", "2025-02-21", "2025-03-02"},
		{"b", "2025-03-03", "2025-03-07"},
		{"fc", "2025-03-08", "2025-03-10"},
		{"c", "2025-03-11", "2025-03-14"},
		{"fin", "2025-03-15", "2025-03-20"},
		{"t", "2025-03-21", "2025-03-25"},
	}

	require.Len(t, dated, len(want))
	for i, w := range want {
		assert.Equal(t, w.id, dated[i].ID, "output keeps input order")
		assert.Equal(t, w.start, dated[i].Start.String(), "%s start", w.id)
		assert.Equal(t, w.end, dated[i].End.String(), "%s end", w.id)
		assert.True(t, dated[i].Scheduled())
	}
}

func TestAssignDates_FinalCloseAbsorbsCompression(t *testing.T) {
	// 4 days between the anchors cannot hold c (4d) and fin (2d); fin
	// still ends on the anchor and its span goes negative.
	first := domain.MustParseDate("2025-03-10")
	final := domain.MustParseDate("2025-03-14")

	byID := datedByID(AssignDates(unadjusted(testCatalog().Milestones), first, final))

	assert.Equal(t, "2025-03-15", byID["fin"].Start.String())
	assert.Equal(t, "2025-03-14", byID["fin"].End.String())
	assert.Equal(t, "2025-03-15", byID["t"].Start.String(), "trailing pass chains from the final anchor")
}

func TestAssignDates_SameDayAnchors(t *testing.T) {
	day := domain.MustParseDate("2025-03-10")
	byID := datedByID(AssignDates(unadjusted(testCatalog().Milestones), day, day))

	assert.True(t, byID["fc"].End.Equal(day))
	assert.True(t, byID["fin"].End.Equal(day))
}

func TestAssignDates_MissingFirstClose(t *testing.T) {
	cfg := testConfig()
	adjusted := unadjusted(testCatalog().Milestones)
	withoutFirst := append(append([]AdjustedMilestone(nil), adjusted[:2]...), adjusted[3:]...)

	dated := AssignDates(withoutFirst, cfg.FirstClose, cfg.FinalClose)

	require.Len(t, dated, 5)
	for _, m := range dated {
		assert.False(t, m.Scheduled(), "%s should be undated", m.ID)
		assert.True(t, m.Start.IsZero())
		assert.True(t, m.End.IsZero())
	}
}

func TestAssignDates_MissingFinalClose(t *testing.T) {
	cfg := testConfig()
	adjusted := unadjusted(testCatalog().Milestones)
	withoutFinal := append(append([]AdjustedMilestone(nil), adjusted[:4]...), adjusted[5:]...)

	byID := datedByID(AssignDates(withoutFinal, cfg.FirstClose, cfg.FinalClose))

	assert.True(t, byID["a"].Scheduled())
	assert.True(t, byID["b"].Scheduled())
	assert.Equal(t, cfg.FirstClose, byID["fc"].End)
	assert.False(t, byID["c"].Scheduled())
	assert.False(t, byID["t"].Scheduled())
}

func TestAssignDates_ZeroDuration(t *testing.T) {
	cfg := testConfig()
	adjusted := unadjusted(testCatalog().Milestones)
	adjusted[1].DurationDays = 0

	byID := datedByID(AssignDates(adjusted, cfg.FirstClose, cfg.FinalClose))

	// a zero-day milestone ends the day before it starts
	assert.Equal(t, "2025-03-08", byID["b"].Start.String())
	assert.Equal(t, "2025-03-07", byID["b"].End.String())
	assert.Equal(t, "2025-03-07", byID["a"].End.String())
}

func TestAssignDates_Empty(t *testing.T) {
	cfg := testConfig()
	assert.Empty(t, AssignDates(nil, cfg.FirstClose, cfg.FinalClose))
}

func TestDatedMilestone_SpanDays(t *testing.T) {
	m := DatedMilestone{
		Start: domain.MustParseDate("2025-03-01"),
		End:   domain.MustParseDate("2025-03-05"),
	}
	assert.Equal(t, 5, m.SpanDays())
	assert.Equal(t, 0, DatedMilestone{}.SpanDays())
}
