// Package schedule turns a milestone catalog and a user configuration into a
// dated, phase-grouped fund formation plan.
//
// The pipeline is Adjust -> FilterByScope -> AssignDates -> GroupIntoPhases.
// Every stage is a pure function of its inputs; Scheduler wires them together
// against an injected catalog.
package schedule

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/fundplan/internal/domain"
	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
)

// Config is the user input for one schedule computation.
type Config struct {
	Strategy      domain.Strategy      `json:"strategy" yaml:"strategy"`
	FundSize      domain.FundSizeBand  `json:"fund_size" yaml:"fund_size"`
	Jurisdiction  domain.Jurisdiction  `json:"jurisdiction" yaml:"jurisdiction"`
	AnchorStatus  domain.AnchorStatus  `json:"anchor_status" yaml:"anchor_status"`
	StartingPoint domain.StartingPoint `json:"starting_point" yaml:"starting_point"`
	DetailLevel   domain.DetailLevel   `json:"detail_level" yaml:"detail_level"`
	FirstClose    domain.Date          `json:"first_close" yaml:"first_close"`
	FinalClose    domain.Date          `json:"final_close" yaml:"final_close"`
}

// DefaultConfig returns the neutral configuration: every factor is x1.0 and
// no milestone is filtered. Anchor dates are left unset.
func DefaultConfig() Config {
	return Config{
		Strategy:      domain.StrategyVentureCapital,
		FundSize:      domain.FundSize50To250M,
		Jurisdiction:  domain.JurisdictionCayman,
		AnchorStatus:  domain.AnchorInDiscussion,
		StartingPoint: domain.StartFromScratch,
		DetailLevel:   domain.DetailDetailed,
	}
}

// Validate checks the anchor dates. It is meant for input boundaries (CLI
// flags, HTTP bodies); the scheduler itself assumes validated anchors.
// Unrecognised option values are not errors, see Unrecognized.
func (c Config) Validate() error {
	if c.FirstClose.IsZero() {
		return fperrors.NewConfigInvalidError("first close date is required")
	}
	if c.FinalClose.IsZero() {
		return fperrors.NewConfigInvalidError("final close date is required")
	}
	if c.FinalClose.Before(c.FirstClose) {
		return fperrors.NewAnchorsInvertedError(c.FirstClose.String(), c.FinalClose.String())
	}
	return nil
}

// Unrecognized lists option values outside the enumerated sets. Such values
// are scheduled as "no adjustment" and "no filtering"; callers surface the
// list as warnings.
func (c Config) Unrecognized() []string {
	var warnings []string
	for _, err := range []error{
		c.Strategy.Validate(),
		c.FundSize.Validate(),
		c.Jurisdiction.Validate(),
		c.AnchorStatus.Validate(),
		c.StartingPoint.Validate(),
		c.DetailLevel.Validate(),
	} {
		if err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	return warnings
}

// Key returns a canonical string for the configuration. Equal configurations
// have equal keys.
func (c Config) Key() string {
	fields := []string{
		"strategy=" + string(c.Strategy),
		"fund_size=" + string(c.FundSize),
		"jurisdiction=" + string(c.Jurisdiction),
		"anchor_status=" + string(c.AnchorStatus),
		"starting_point=" + string(c.StartingPoint),
		"detail_level=" + string(c.DetailLevel),
		"first_close=" + c.FirstClose.String(),
		"final_close=" + c.FinalClose.String(),
	}
	return strings.Join(fields, ";")
}

// String implements fmt.Stringer
func (c Config) String() string {
	return fmt.Sprintf("Config{%s}", c.Key())
}
