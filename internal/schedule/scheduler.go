package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/fundplan/internal/catalog"
	"github.com/felixgeelhaar/fundplan/internal/domain"
	"github.com/felixgeelhaar/fundplan/internal/log"
)

// scheduleNamespace seeds the name-based schedule IDs.
var scheduleNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/felixgeelhaar/fundplan/schedule"))

// Schedule is the result of one computation.
type Schedule struct {
	// ID is derived from the catalog fingerprint and the configuration, so
	// the same inputs always yield the same ID.
	ID                 uuid.UUID `json:"id" yaml:"id"`
	CatalogFingerprint string    `json:"catalog_fingerprint" yaml:"catalog_fingerprint"`
	Config             Config    `json:"config" yaml:"config"`
	Phases             []Phase   `json:"phases" yaml:"phases"`

	// Unscheduled lists milestones that survived the scope filter but could
	// not be dated because an anchor milestone was missing.
	Unscheduled []string `json:"unscheduled,omitempty" yaml:"unscheduled,omitempty"`
}

// IsEmpty reports whether the schedule has no phases.
func (s *Schedule) IsEmpty() bool {
	return len(s.Phases) == 0
}

// MilestoneCount returns the number of dated milestones.
func (s *Schedule) MilestoneCount() int {
	n := 0
	for _, p := range s.Phases {
		n += len(p.Milestones)
	}
	return n
}

// Span returns the earliest start and latest end across all phases.
func (s *Schedule) Span() (start, end domain.Date) {
	for i, p := range s.Phases {
		if i == 0 || p.Start.Before(start) {
			start = p.Start
		}
		if i == 0 || p.End.After(end) {
			end = p.End
		}
	}
	return start, end
}

// Computer computes schedules against a fixed catalog.
type Computer interface {
	Compute(cfg Config) *Schedule
	Catalog() *catalog.Catalog
}

// Observer receives a notification after every computation.
type Observer interface {
	ObserveSchedule(cfg Config, s *Schedule, elapsed time.Duration)
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithObserver registers an observer, typically the metrics collector.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		s.observer = o
	}
}

// Scheduler runs the pipeline against an injected, read-only catalog. It is
// safe for concurrent use.
type Scheduler struct {
	catalog  *catalog.Catalog
	logger   *log.Logger
	observer Observer
}

// NewScheduler creates a Scheduler for the catalog.
func NewScheduler(c *catalog.Catalog, opts ...Option) *Scheduler {
	s := &Scheduler{
		catalog: c,
		logger:  log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the scheduler computes against.
func (s *Scheduler) Catalog() *catalog.Catalog {
	return s.catalog
}

// Compute runs adjust, scope filter, date propagation and phase grouping.
// The result depends only on the catalog and cfg.
func (s *Scheduler) Compute(cfg Config) *Schedule {
	began := time.Now()

	adjusted := Adjust(s.catalog.Milestones, cfg)
	scoped := FilterByScope(adjusted, cfg, s.catalog.Scope)
	dated := AssignDates(scoped, cfg.FirstClose, cfg.FinalClose)
	phases := GroupIntoPhases(dated, s.catalog.Phases)

	var unscheduled []string
	for _, m := range dated {
		if !m.Scheduled() {
			unscheduled = append(unscheduled, m.ID)
		}
	}

	fingerprint := s.catalog.Fingerprint()
	result := &Schedule{
		ID:                 ScheduleID(fingerprint, cfg),
		CatalogFingerprint: fingerprint,
		Config:             cfg,
		Phases:             phases,
		Unscheduled:        unscheduled,
	}

	s.logger.Debug("schedule computed",
		"schedule_id", result.ID.String(),
		"milestones_in_scope", len(scoped),
		"milestones_dated", result.MilestoneCount(),
		"phases", len(phases),
		"unscheduled", len(unscheduled),
	)
	if len(unscheduled) > 0 {
		s.logger.Warn("milestones left undated because an anchor milestone is out of scope",
			"schedule_id", result.ID.String(),
			"milestones", unscheduled,
		)
	}
	if s.observer != nil {
		s.observer.ObserveSchedule(cfg, result, time.Since(began))
	}
	return result
}

// ScheduleID derives the deterministic ID for a catalog fingerprint and
// configuration.
func ScheduleID(fingerprint string, cfg Config) uuid.UUID {
	return uuid.NewSHA1(scheduleNamespace, []byte(fingerprint+"\n"+cfg.Key()))
}
