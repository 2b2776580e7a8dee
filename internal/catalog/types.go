// Package catalog holds the milestone template store: the ordered list of
// fund formation milestones, the phase metadata and the scope id sets used
// by the scheduler.
//
// A Catalog is authored content. It is loaded once (from the embedded
// built-in file or an explicit override) and then shared read-only; nothing
// in this module mutates a loaded Catalog.
package catalog

// Anchor marks a milestone whose end date is pinned to a configured date.
type Anchor string

// Anchor designations
const (
	AnchorNone       Anchor = ""
	AnchorFirstClose Anchor = "first-close"
	AnchorFinalClose Anchor = "final-close"
)

// Catalog is the full template store
type Catalog struct {
	Schema     string      `yaml:"schema" json:"schema"`
	Phases     []Phase     `yaml:"phases" json:"phases"`
	Milestones []Milestone `yaml:"milestones" json:"milestones"`
	Scope      Scope       `yaml:"scope" json:"scope"`

	fingerprint string
}

// Phase is display metadata for a group of milestones
type Phase struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Color       string `yaml:"color" json:"color"`
}

// Milestone is a single milestone template
type Milestone struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Phase       string   `yaml:"phase" json:"phase"`
	Categories  []string `yaml:"categories" json:"categories"`
	Owner       string   `yaml:"owner" json:"owner"`

	// BaseDurationDays is the unadjusted duration, inclusive of both endpoints
	BaseDurationDays int `yaml:"base_duration_days" json:"base_duration_days"`

	// DependsOn is shown to users but never drives date placement
	DependsOn []string `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`

	ScalesWithAnchorStatus bool `yaml:"scales_with_anchor_status,omitempty" json:"scales_with_anchor_status,omitempty"`
	ScalesWithJurisdiction bool `yaml:"scales_with_jurisdiction,omitempty" json:"scales_with_jurisdiction,omitempty"`
	ScalesWithFundSize     bool `yaml:"scales_with_fund_size,omitempty" json:"scales_with_fund_size,omitempty"`

	// Optional is reserved; it has no scheduling effect
	Optional bool `yaml:"optional,omitempty" json:"optional,omitempty"`

	Anchor Anchor `yaml:"anchor,omitempty" json:"anchor,omitempty"`
}

// Scope holds the id sets consumed by the scope filter
type Scope struct {
	// DraftMaterialsSkip is dropped when the user already has draft materials
	DraftMaterialsSkip []string `yaml:"draft_materials_skip" json:"draft_materials_skip"`

	// LateStagePhases are the only phases kept when close to first close
	LateStagePhases []string `yaml:"late_stage_phases" json:"late_stage_phases"`

	// KeyMilestones is the allow-list for the simple detail level
	KeyMilestones []string `yaml:"key_milestones" json:"key_milestones"`
}

// Fingerprint returns the hex BLAKE3 digest of the catalog content. Two
// catalogs with the same fingerprint produce identical schedules.
// Loaded catalogs cache the digest; hand-built ones recompute it per call.
func (c *Catalog) Fingerprint() string {
	if c.fingerprint != "" {
		return c.fingerprint
	}
	return computeFingerprint(c)
}

// Milestone returns the milestone with the given id.
func (c *Catalog) Milestone(id string) (Milestone, bool) {
	for _, m := range c.Milestones {
		if m.ID == id {
			return m, true
		}
	}
	return Milestone{}, false
}

// Phase returns the phase metadata with the given id.
func (c *Catalog) Phase(id string) (Phase, bool) {
	for _, p := range c.Phases {
		if p.ID == id {
			return p, true
		}
	}
	return Phase{}, false
}

// AnchorIndex returns the position of the milestone carrying the anchor, or -1.
func (c *Catalog) AnchorIndex(a Anchor) int {
	for i, m := range c.Milestones {
		if m.Anchor == a {
			return i
		}
	}
	return -1
}
