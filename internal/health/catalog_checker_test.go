package health

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/fundplan/internal/catalog"
	"github.com/felixgeelhaar/fundplan/internal/schedule"
)

func TestCatalogChecker(t *testing.T) {
	ctx := context.Background()

	t.Run("builtin is healthy", func(t *testing.T) {
		c := catalog.MustLoadBuiltin()
		r := NewCatalogChecker(c).Check(ctx)

		assert.Equal(t, StatusHealthy, r.Status)
		assert.Equal(t, c.Fingerprint(), r.Details["fingerprint"])
		assert.Equal(t, 23, r.Details["milestones"])
	})

	t.Run("lint warnings degrade", func(t *testing.T) {
		c := catalog.MustLoadBuiltin()
		linted := *c
		linted.Scope.KeyMilestones = []string{"first-close"}

		r := NewCatalogChecker(&linted).Check(ctx)
		assert.Equal(t, StatusDegraded, r.Status)
		assert.NotEmpty(t, r.Details["warnings"])
	})

	t.Run("invalid is unhealthy", func(t *testing.T) {
		broken := &catalog.Catalog{Schema: "fundplan.catalog/v1"}
		r := NewCatalogChecker(broken).Check(ctx)
		assert.Equal(t, StatusUnhealthy, r.Status)
	})

	t.Run("missing catalog", func(t *testing.T) {
		assert.Equal(t, StatusUnhealthy, NewCatalogChecker(nil).Check(ctx).Status)
	})

	assert.Equal(t, "catalog", NewCatalogChecker(nil).Name())
}

type brokenComputer struct {
	schedule.Computer
}

func (brokenComputer) Compute(schedule.Config) *schedule.Schedule {
	return &schedule.Schedule{}
}

func TestSchedulerChecker(t *testing.T) {
	ctx := context.Background()
	c := catalog.MustLoadBuiltin()

	r := NewSchedulerChecker(schedule.NewScheduler(c)).Check(ctx)
	assert.Equal(t, StatusHealthy, r.Status)
	assert.Equal(t, 23, r.Details["milestones"])

	bad := NewSchedulerChecker(brokenComputer{}).Check(ctx)
	assert.Equal(t, StatusUnhealthy, bad.Status)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Equal(t, StatusUnhealthy, NewSchedulerChecker(schedule.NewScheduler(c)).Check(cancelled).Status)

	assert.Equal(t, "scheduler", NewSchedulerChecker(nil).Name())
}
