package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/felixgeelhaar/fundplan/internal/schedule"
)

// EmptyMessage is printed when no milestone could be scheduled.
const EmptyMessage = "No schedule: no milestones are in scope for this configuration."

type styles struct {
	renderer *lipgloss.Renderer
	title    lipgloss.Style
	muted    lipgloss.Style
	header   lipgloss.Style
	cell     lipgloss.Style
	border   lipgloss.Style
	warning  lipgloss.Style
}

func newStyles(w io.Writer, opts Options) styles {
	r := lipgloss.NewRenderer(w)
	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		renderer: r,
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("8")),
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1),
		cell:     r.NewStyle().Padding(0, 1),
		border:   r.NewStyle().Foreground(lipgloss.Color("8")),
		warning:  r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// phaseStyle colours text with the catalog colour of the phase.
func (s styles) phaseStyle(color string) lipgloss.Style {
	return s.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
}

func writeTable(w io.Writer, sched *schedule.Schedule, opts Options) error {
	st := newStyles(w, opts)
	var b strings.Builder

	if sched.IsEmpty() {
		b.WriteString(st.muted.Render(EmptyMessage))
		b.WriteString("\n")
		writeUnscheduled(&b, st, sched)
		_, err := io.WriteString(w, b.String())
		return err
	}

	start, end := sched.Span()
	b.WriteString(st.title.Render("Fund formation timeline"))
	b.WriteString("\n")
	b.WriteString(st.muted.Render(fmt.Sprintf("%s to %s, %d milestones in %d phases",
		start, end, sched.MilestoneCount(), len(sched.Phases))))
	b.WriteString("\n\n")

	for _, p := range sched.Phases {
		heading := fmt.Sprintf("%s  %s to %s", p.Name, p.Start, p.End)
		b.WriteString(st.phaseStyle(p.Color).Render(heading))
		b.WriteString("\n")

		rows := make([][]string, 0, len(p.Milestones))
		for _, m := range p.Milestones {
			rows = append(rows, []string{
				m.Name,
				m.Start.String(),
				m.End.String(),
				strconv.Itoa(m.DurationDays),
				m.Owner,
			})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(st.border).
			Headers("Milestone", "Start", "End", "Days", "Owner").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return st.header
				}
				return st.cell
			})
		b.WriteString(t.String())
		b.WriteString("\n\n")
	}

	writeUnscheduled(&b, st, sched)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRows(w io.Writer, sched *schedule.Schedule, opts Options) error {
	st := newStyles(w, opts)

	rows := schedule.Rows(sched.Phases)
	if len(rows) == 0 {
		_, err := io.WriteString(w, st.muted.Render(EmptyMessage)+"\n")
		return err
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, r.Strings())
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		Headers(schedule.RowHeader...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			return st.cell
		})

	_, err := io.WriteString(w, t.String()+"\n")
	return err
}

func writeUnscheduled(b *strings.Builder, st styles, sched *schedule.Schedule) {
	if len(sched.Unscheduled) == 0 {
		return
	}
	b.WriteString(st.warning.Render(fmt.Sprintf(
		"%d milestones were left undated because an anchor milestone is out of scope: %s",
		len(sched.Unscheduled), strings.Join(sched.Unscheduled, ", "))))
	b.WriteString("\n")
}

// List writes a plain bordered table, used for preset and catalog listings.
func List(w io.Writer, headers []string, rows [][]string, opts Options) error {
	st := newStyles(w, opts)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			return st.cell
		})

	_, err := io.WriteString(w, t.String()+"\n")
	return err
}
