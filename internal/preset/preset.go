// Package preset provides named, partial schedule configurations that can be
// applied wholesale before individual options are set.
package preset

import (
	"fmt"

	"github.com/felixgeelhaar/fundplan/internal/domain"
	"github.com/felixgeelhaar/fundplan/internal/schedule"
)

// Collection is the on-disk form of a presets file.
type Collection struct {
	Schema  string            `yaml:"schema"`
	Presets map[string]Preset `yaml:"presets"`
}

// Preset is a named bundle of option overrides.
type Preset struct {
	Name        string    `yaml:"-" json:"name"`
	Description string    `yaml:"description" json:"description"`
	Overrides   Overrides `yaml:"overrides" json:"overrides"`

	// Source is where the preset was last defined: builtin, user or project.
	Source string `yaml:"-" json:"source"`
}

// Overrides holds the options a preset sets. Nil fields leave the option
// untouched. Anchor dates are not part of a preset; they always come from
// the caller.
type Overrides struct {
	Strategy      *domain.Strategy      `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	FundSize      *domain.FundSizeBand  `yaml:"fund_size,omitempty" json:"fund_size,omitempty"`
	Jurisdiction  *domain.Jurisdiction  `yaml:"jurisdiction,omitempty" json:"jurisdiction,omitempty"`
	AnchorStatus  *domain.AnchorStatus  `yaml:"anchor_status,omitempty" json:"anchor_status,omitempty"`
	StartingPoint *domain.StartingPoint `yaml:"starting_point,omitempty" json:"starting_point,omitempty"`
	DetailLevel   *domain.DetailLevel   `yaml:"detail_level,omitempty" json:"detail_level,omitempty"`
}

// Validate checks every override that is set.
func (p *Preset) Validate() error {
	o := p.Overrides
	checks := []struct {
		set bool
		fn  func() error
	}{
		{o.Strategy != nil, func() error { return o.Strategy.Validate() }},
		{o.FundSize != nil, func() error { return o.FundSize.Validate() }},
		{o.Jurisdiction != nil, func() error { return o.Jurisdiction.Validate() }},
		{o.AnchorStatus != nil, func() error { return o.AnchorStatus.Validate() }},
		{o.StartingPoint != nil, func() error { return o.StartingPoint.Validate() }},
		{o.DetailLevel != nil, func() error { return o.DetailLevel.Validate() }},
	}
	for _, c := range checks {
		if !c.set {
			continue
		}
		if err := c.fn(); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	return nil
}

// Apply returns cfg with the preset's overrides set. cfg is not modified.
func (p *Preset) Apply(cfg schedule.Config) schedule.Config {
	o := p.Overrides
	if o.Strategy != nil {
		cfg.Strategy = *o.Strategy
	}
	if o.FundSize != nil {
		cfg.FundSize = *o.FundSize
	}
	if o.Jurisdiction != nil {
		cfg.Jurisdiction = *o.Jurisdiction
	}
	if o.AnchorStatus != nil {
		cfg.AnchorStatus = *o.AnchorStatus
	}
	if o.StartingPoint != nil {
		cfg.StartingPoint = *o.StartingPoint
	}
	if o.DetailLevel != nil {
		cfg.DetailLevel = *o.DetailLevel
	}
	return cfg
}

// Merge returns a new preset with other's set fields layered over p.
func (p *Preset) Merge(other *Preset) *Preset {
	merged := *p
	if other.Description != "" {
		merged.Description = other.Description
	}
	if other.Source != "" {
		merged.Source = other.Source
	}

	o := other.Overrides
	if o.Strategy != nil {
		merged.Overrides.Strategy = o.Strategy
	}
	if o.FundSize != nil {
		merged.Overrides.FundSize = o.FundSize
	}
	if o.Jurisdiction != nil {
		merged.Overrides.Jurisdiction = o.Jurisdiction
	}
	if o.AnchorStatus != nil {
		merged.Overrides.AnchorStatus = o.AnchorStatus
	}
	if o.StartingPoint != nil {
		merged.Overrides.StartingPoint = o.StartingPoint
	}
	if o.DetailLevel != nil {
		merged.Overrides.DetailLevel = o.DetailLevel
	}
	return &merged
}
