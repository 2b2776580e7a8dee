package schedule

import (
	"strconv"
	"strings"

	"github.com/felixgeelhaar/fundplan/internal/domain"
)

// RowHeader names the export columns, in the order of Row.Strings.
var RowHeader = []string{"Phase", "Milestone", "Start", "End", "Duration (days)", "Owner", "Categories"}

// Row is one scheduled milestone flattened for tabular export.
type Row struct {
	Phase        string      `json:"phase" yaml:"phase"`
	Milestone    string      `json:"milestone" yaml:"milestone"`
	Start        domain.Date `json:"start_date" yaml:"start_date"`
	End          domain.Date `json:"end_date" yaml:"end_date"`
	DurationDays int         `json:"duration_days" yaml:"duration_days"`
	Owner        string      `json:"owner" yaml:"owner"`
	Categories   []string    `json:"categories" yaml:"categories"`
}

// Strings returns the row's cells, with categories joined by "; ".
func (r Row) Strings() []string {
	return []string{
		r.Phase,
		r.Milestone,
		r.Start.String(),
		r.End.String(),
		strconv.Itoa(r.DurationDays),
		r.Owner,
		strings.Join(r.Categories, "; "),
	}
}

// Rows flattens phases into export rows, in phase then milestone order.
// Only scheduled milestones appear, since phases hold nothing else.
func Rows(phases []Phase) []Row {
	var rows []Row
	for _, p := range phases {
		for _, m := range p.Milestones {
			rows = append(rows, Row{
				Phase:        p.Name,
				Milestone:    m.Name,
				Start:        m.Start,
				End:          m.End,
				DurationDays: m.DurationDays,
				Owner:        m.Owner,
				Categories:   m.Categories,
			})
		}
	}
	return rows
}
