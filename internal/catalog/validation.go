package catalog

import (
	"fmt"
	"regexp"
	"strings"

	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks if the Phase is valid
func (p *Phase) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("phase id cannot be empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("phase %q name cannot be empty", p.ID)
	}
	if !colorPattern.MatchString(p.Color) {
		return fmt.Errorf("phase %q color %q must be a #RRGGBB hex value", p.ID, p.Color)
	}
	return nil
}

// Validate checks if the Milestone is valid on its own
func (m *Milestone) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("milestone id cannot be empty")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("milestone %q name cannot be empty", m.ID)
	}
	if strings.TrimSpace(m.Phase) == "" {
		return fmt.Errorf("milestone %q phase cannot be empty", m.ID)
	}
	if m.BaseDurationDays <= 0 {
		return fmt.Errorf("milestone %q base duration must be positive, got %d", m.ID, m.BaseDurationDays)
	}
	switch m.Anchor {
	case AnchorNone, AnchorFirstClose, AnchorFinalClose:
	default:
		return fmt.Errorf("milestone %q has unknown anchor %q", m.ID, m.Anchor)
	}
	return nil
}

// Problems returns every structural problem found in the catalog, in a
// stable order. An empty result means the catalog is valid.
func (c *Catalog) Problems() []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Schema != "" && !strings.HasPrefix(c.Schema, "fundplan.catalog/v") {
		add("unsupported schema version: %s", c.Schema)
	}

	if len(c.Phases) == 0 {
		add("catalog must define at least one phase")
	}
	phaseIDs := make(map[string]bool)
	for i := range c.Phases {
		p := &c.Phases[i]
		if err := p.Validate(); err != nil {
			add("phase at index %d: %v", i, err)
		}
		if phaseIDs[p.ID] {
			add("duplicate phase id %q", p.ID)
		}
		phaseIDs[p.ID] = true
	}

	if len(c.Milestones) == 0 {
		add("catalog must define at least one milestone")
	}

	// position of each id, used to enforce "array order is schedule order"
	position := make(map[string]int)
	anchors := make(map[Anchor][]int)
	for i := range c.Milestones {
		m := &c.Milestones[i]
		if err := m.Validate(); err != nil {
			add("milestone at index %d: %v", i, err)
		}
		if _, dup := position[m.ID]; dup {
			add("duplicate milestone id %q", m.ID)
		} else {
			position[m.ID] = i
		}
		if m.Phase != "" && !phaseIDs[m.Phase] {
			add("milestone %q references unknown phase %q", m.ID, m.Phase)
		}
		if m.Anchor != AnchorNone {
			anchors[m.Anchor] = append(anchors[m.Anchor], i)
		}
	}

	for i := range c.Milestones {
		m := &c.Milestones[i]
		for _, dep := range m.DependsOn {
			depIdx, ok := position[dep]
			switch {
			case !ok:
				add("milestone %q depends on unknown milestone %q", m.ID, dep)
			case depIdx >= i:
				add("milestone %q depends on %q which is not listed before it", m.ID, dep)
			}
		}
	}

	for _, a := range []Anchor{AnchorFirstClose, AnchorFinalClose} {
		switch n := len(anchors[a]); n {
		case 1:
		case 0:
			add("no milestone is designated %s", a)
		default:
			add("%d milestones are designated %s, want exactly one", n, a)
		}
	}
	if len(anchors[AnchorFirstClose]) == 1 && len(anchors[AnchorFinalClose]) == 1 &&
		anchors[AnchorFinalClose][0] < anchors[AnchorFirstClose][0] {
		add("final-close milestone must be listed after the first-close milestone")
	}

	for _, id := range c.Scope.DraftMaterialsSkip {
		if _, ok := position[id]; !ok {
			add("scope.draft_materials_skip references unknown milestone %q", id)
		}
	}
	for _, id := range c.Scope.KeyMilestones {
		if _, ok := position[id]; !ok {
			add("scope.key_milestones references unknown milestone %q", id)
		}
	}
	for _, id := range c.Scope.LateStagePhases {
		if !phaseIDs[id] {
			add("scope.late_stage_phases references unknown phase %q", id)
		}
	}

	return problems
}

// Validate returns a CATALOG-002 error describing the first problem, or nil.
func (c *Catalog) Validate() error {
	problems := c.Problems()
	if len(problems) == 0 {
		return nil
	}
	details := problems[0]
	if len(problems) > 1 {
		details = fmt.Sprintf("%s (and %d more)", details, len(problems)-1)
	}
	return fperrors.NewCatalogInvalidError(details)
}
