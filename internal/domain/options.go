package domain

import "fmt"

// AnchorStatus describes whether an anchor investor backs the fund.
type AnchorStatus string

// Recognised anchor investor states
const (
	AnchorCommitted    AnchorStatus = "committed"
	AnchorInDiscussion AnchorStatus = "in-discussion"
	AnchorNone         AnchorStatus = "none"
)

// Validate checks if the anchor status is a recognised value
func (a AnchorStatus) Validate() error {
	switch a {
	case AnchorCommitted, AnchorInDiscussion, AnchorNone:
		return nil
	default:
		return fmt.Errorf("invalid anchor status %q: must be committed, in-discussion, or none", string(a))
	}
}

// StartingPoint describes how much preparatory work is already done.
type StartingPoint string

// Recognised starting points
const (
	StartFromScratch        StartingPoint = "from-scratch"
	StartHaveDraftMaterials StartingPoint = "have-draft-materials"
	StartCloseToFirstClose  StartingPoint = "close-to-first-close"
)

// Validate checks if the starting point is a recognised value
func (s StartingPoint) Validate() error {
	switch s {
	case StartFromScratch, StartHaveDraftMaterials, StartCloseToFirstClose:
		return nil
	default:
		return fmt.Errorf("invalid starting point %q: must be from-scratch, have-draft-materials, or close-to-first-close", string(s))
	}
}

// DetailLevel controls plan granularity.
type DetailLevel string

// Recognised detail levels
const (
	DetailSimple   DetailLevel = "simple"
	DetailDetailed DetailLevel = "detailed"
)

// Validate checks if the detail level is a recognised value
func (d DetailLevel) Validate() error {
	switch d {
	case DetailSimple, DetailDetailed:
		return nil
	default:
		return fmt.Errorf("invalid detail level %q: must be simple or detailed", string(d))
	}
}

// Tier ranks how much friction a jurisdiction or fund size adds.
type Tier int

// Tiers, from least to most effort. TierUnknown is returned for
// unrecognised values and behaves like TierStandard.
const (
	TierUnknown Tier = iota
	TierLightest
	TierStandard
	TierHeaviest
)

// Jurisdiction is the fund domicile.
type Jurisdiction string

// Recognised jurisdictions
const (
	JurisdictionDelaware   Jurisdiction = "delaware"
	JurisdictionCayman     Jurisdiction = "cayman"
	JurisdictionLuxembourg Jurisdiction = "luxembourg"
	JurisdictionMulti      Jurisdiction = "multi-jurisdiction"
)

// Tier returns the complexity tier of the jurisdiction.
func (j Jurisdiction) Tier() Tier {
	switch j {
	case JurisdictionDelaware:
		return TierLightest
	case JurisdictionCayman, JurisdictionLuxembourg:
		return TierStandard
	case JurisdictionMulti:
		return TierHeaviest
	default:
		return TierUnknown
	}
}

// Validate checks if the jurisdiction is a recognised value
func (j Jurisdiction) Validate() error {
	if j.Tier() == TierUnknown {
		return fmt.Errorf("invalid jurisdiction %q: must be delaware, cayman, luxembourg, or multi-jurisdiction", string(j))
	}
	return nil
}

// FundSizeBand is the target fund size bucket.
type FundSizeBand string

// Recognised fund size bands, smallest first
const (
	FundSizeUnder50M FundSizeBand = "under-50m"
	FundSize50To250M FundSizeBand = "50m-250m"
	FundSize250MTo1B FundSizeBand = "250m-1b"
	FundSizeOver1B   FundSizeBand = "over-1b"
)

// Tier returns the size tier of the band.
func (f FundSizeBand) Tier() Tier {
	switch f {
	case FundSizeUnder50M:
		return TierLightest
	case FundSize50To250M, FundSize250MTo1B:
		return TierStandard
	case FundSizeOver1B:
		return TierHeaviest
	default:
		return TierUnknown
	}
}

// Validate checks if the fund size band is a recognised value
func (f FundSizeBand) Validate() error {
	if f.Tier() == TierUnknown {
		return fmt.Errorf("invalid fund size band %q: must be under-50m, 50m-250m, 250m-1b, or over-1b", string(f))
	}
	return nil
}

// Strategy is the fund's investment strategy. It is informational only
// and does not change durations.
type Strategy string

// Recognised strategies
const (
	StrategyVentureCapital Strategy = "venture-capital"
	StrategyPrivateEquity  Strategy = "private-equity"
	StrategyPrivateCredit  Strategy = "private-credit"
	StrategyRealEstate     Strategy = "real-estate"
	StrategyInfrastructure Strategy = "infrastructure"
)

// Validate checks if the strategy is a recognised value
func (s Strategy) Validate() error {
	switch s {
	case StrategyVentureCapital, StrategyPrivateEquity, StrategyPrivateCredit,
		StrategyRealEstate, StrategyInfrastructure:
		return nil
	default:
		return fmt.Errorf("invalid strategy %q", string(s))
	}
}
