package schedule

import (
	"github.com/felixgeelhaar/fundplan/internal/catalog"
	"github.com/felixgeelhaar/fundplan/internal/domain"
)

// AdjustedMilestone is a catalog milestone with its post-adjustment duration.
type AdjustedMilestone struct {
	catalog.Milestone
	DurationDays int `json:"duration_days" yaml:"duration_days"`
}

// DatedMilestone is an adjusted milestone placed on the calendar. Both dates
// are inclusive. Milestones the propagator could not reach carry zero dates.
type DatedMilestone struct {
	AdjustedMilestone
	Start domain.Date `json:"start_date" yaml:"start_date"`
	End   domain.Date `json:"end_date" yaml:"end_date"`
}

// Scheduled reports whether the milestone received dates.
func (m DatedMilestone) Scheduled() bool {
	return !m.Start.IsZero() && !m.End.IsZero()
}

// SpanDays is the inclusive number of calendar days covered by the milestone.
func (m DatedMilestone) SpanDays() int {
	if !m.Scheduled() {
		return 0
	}
	return m.Start.DaysUntil(m.End) + 1
}

// Phase is a group of scheduled milestones with its derived date span.
type Phase struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string           `json:"color" yaml:"color"`
	Start       domain.Date      `json:"start_date" yaml:"start_date"`
	End         domain.Date      `json:"end_date" yaml:"end_date"`
	Milestones  []DatedMilestone `json:"milestones" yaml:"milestones"`
}
