package health

import (
	"context"

	"github.com/felixgeelhaar/fundplan/internal/catalog"
	"github.com/felixgeelhaar/fundplan/internal/domain"
	"github.com/felixgeelhaar/fundplan/internal/schedule"
)

// CatalogChecker reports on the catalog the server computes against.
// Structural problems make it unhealthy; lint warnings make it degraded.
type CatalogChecker struct {
	catalog *catalog.Catalog
}

// NewCatalogChecker creates a checker for c.
func NewCatalogChecker(c *catalog.Catalog) *CatalogChecker {
	return &CatalogChecker{catalog: c}
}

// Name implements Checker
func (c *CatalogChecker) Name() string {
	return "catalog"
}

// Check implements Checker
func (c *CatalogChecker) Check(_ context.Context) *Result {
	if c.catalog == nil {
		return Unhealthy("no catalog loaded")
	}
	if problems := c.catalog.Problems(); len(problems) > 0 {
		return Unhealthy("catalog is invalid").WithDetail("problems", problems)
	}

	details := func(r *Result) *Result {
		return r.
			WithDetail("fingerprint", c.catalog.Fingerprint()).
			WithDetail("milestones", len(c.catalog.Milestones)).
			WithDetail("phases", len(c.catalog.Phases))
	}
	if warnings := schedule.Lint(c.catalog); len(warnings) > 0 {
		return details(Degraded("catalog has lint warnings")).WithDetail("warnings", warnings)
	}
	return details(Healthy("catalog loaded"))
}

// SchedulerChecker computes a canary schedule and verifies both anchors
// land on their configured dates.
type SchedulerChecker struct {
	computer schedule.Computer
}

// NewSchedulerChecker creates a checker for computer.
func NewSchedulerChecker(computer schedule.Computer) *SchedulerChecker {
	return &SchedulerChecker{computer: computer}
}

// Name implements Checker
func (s *SchedulerChecker) Name() string {
	return "scheduler"
}

// canaryConfig is fixed so the check is cacheable and repeatable.
func canaryConfig() schedule.Config {
	cfg := schedule.DefaultConfig()
	cfg.FirstClose = domain.NewDate(2030, 6, 1)
	cfg.FinalClose = domain.NewDate(2031, 2, 1)
	return cfg
}

// Check implements Checker
func (s *SchedulerChecker) Check(ctx context.Context) *Result {
	if err := ctx.Err(); err != nil {
		return Unhealthy("check cancelled").WithDetail("error", err.Error())
	}

	cfg := canaryConfig()
	result := s.computer.Compute(cfg)

	anchors := map[catalog.Anchor]domain.Date{
		catalog.AnchorFirstClose: cfg.FirstClose,
		catalog.AnchorFinalClose: cfg.FinalClose,
	}
	found := 0
	for _, p := range result.Phases {
		for _, m := range p.Milestones {
			want, ok := anchors[m.Anchor]
			if !ok {
				continue
			}
			found++
			if !m.End.Equal(want) {
				return Unhealthy("anchor milestone missed its date").
					WithDetail("milestone", m.ID).
					WithDetail("end_date", m.End.String()).
					WithDetail("want", want.String())
			}
		}
	}
	if found != len(anchors) {
		return Unhealthy("canary schedule is missing an anchor milestone").WithDetail("anchors_found", found)
	}

	return Healthy("scheduler computed canary schedule").
		WithDetail("schedule_id", result.ID.String()).
		WithDetail("milestones", result.MilestoneCount())
}
