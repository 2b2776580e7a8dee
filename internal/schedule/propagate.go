package schedule

import (
	"github.com/felixgeelhaar/fundplan/internal/catalog"
	"github.com/felixgeelhaar/fundplan/internal/domain"
)

// AssignDates places milestones on the calendar between two anchors. List
// order is schedule order; DependsOn is not consulted.
//
//  1. From the first-close milestone back to the start, each milestone ends
//     the day before its successor starts. First close ends on firstClose.
//  2. From the milestone after first close through the final-close
//     milestone, each starts the day after its predecessor ends. The
//     final-close milestone ends on finalClose whatever its duration.
//  3. Milestones after final close keep chaining forward.
//
// Without a first-close milestone nothing is dated. Without a final-close
// milestone after first close, only passes up to first close run. Undated
// milestones keep zero dates and report Scheduled() == false.
func AssignDates(milestones []AdjustedMilestone, firstClose, finalClose domain.Date) []DatedMilestone {
	out := make([]DatedMilestone, len(milestones))
	first, final := -1, -1
	for i, m := range milestones {
		out[i] = DatedMilestone{AdjustedMilestone: m}
		switch m.Anchor {
		case catalog.AnchorFirstClose:
			if first == -1 {
				first = i
			}
		case catalog.AnchorFinalClose:
			if final == -1 {
				final = i
			}
		}
	}

	if first == -1 {
		return out
	}

	// pass 1
	out[first].End = firstClose
	out[first].Start = startFor(firstClose, out[first].DurationDays)
	for i := first - 1; i >= 0; i-- {
		out[i].End = out[i+1].Start.AddDays(-1)
		out[i].Start = startFor(out[i].End, out[i].DurationDays)
	}

	if final <= first {
		return out
	}

	// pass 2
	for i := first + 1; i <= final; i++ {
		out[i].Start = out[i-1].End.AddDays(1)
		out[i].End = endFor(out[i].Start, out[i].DurationDays)
	}
	out[final].End = finalClose

	// pass 3
	for i := final + 1; i < len(out); i++ {
		out[i].Start = out[i-1].End.AddDays(1)
		out[i].End = endFor(out[i].Start, out[i].DurationDays)
	}

	return out
}

func startFor(end domain.Date, durationDays int) domain.Date {
	return end.AddDays(-(durationDays - 1))
}

func endFor(start domain.Date, durationDays int) domain.Date {
	return start.AddDays(durationDays - 1)
}
