package schedule

import (
	"math"

	"github.com/felixgeelhaar/fundplan/internal/catalog"
	"github.com/felixgeelhaar/fundplan/internal/domain"
)

// AnchorFactor is the duration multiplier for the anchor investor status.
func AnchorFactor(s domain.AnchorStatus) float64 {
	switch s {
	case domain.AnchorCommitted:
		return 0.7
	case domain.AnchorNone:
		return 1.3
	default:
		return 1.0
	}
}

// JurisdictionFactor is the duration multiplier for the jurisdiction tier.
func JurisdictionFactor(j domain.Jurisdiction) float64 {
	switch j.Tier() {
	case domain.TierLightest:
		return 0.9
	case domain.TierHeaviest:
		return 1.2
	default:
		return 1.0
	}
}

// FundSizeFactor is the duration multiplier for the fund size band.
func FundSizeFactor(f domain.FundSizeBand) float64 {
	switch f.Tier() {
	case domain.TierLightest:
		return 0.8
	case domain.TierHeaviest:
		return 1.3
	default:
		return 1.0
	}
}

// Adjust scales each milestone's base duration by the factors its flags opt
// into. Factors apply in the order anchor status, jurisdiction, fund size,
// and the running value is floored after every multiplication. The result
// is not clamped, so very short bases can reach zero.
func Adjust(milestones []catalog.Milestone, cfg Config) []AdjustedMilestone {
	anchor := AnchorFactor(cfg.AnchorStatus)
	jurisdiction := JurisdictionFactor(cfg.Jurisdiction)
	fundSize := FundSizeFactor(cfg.FundSize)

	out := make([]AdjustedMilestone, 0, len(milestones))
	for _, m := range milestones {
		days := m.BaseDurationDays
		if m.ScalesWithAnchorStatus {
			days = scale(days, anchor)
		}
		if m.ScalesWithJurisdiction {
			days = scale(days, jurisdiction)
		}
		if m.ScalesWithFundSize {
			days = scale(days, fundSize)
		}
		out = append(out, AdjustedMilestone{Milestone: m, DurationDays: days})
	}
	return out
}

func scale(days int, factor float64) int {
	return int(math.Floor(float64(days) * factor))
}
