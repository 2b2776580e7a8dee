package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
	"github.com/felixgeelhaar/fundplan/internal/schedule"
)

// Metrics holds all Prometheus metrics for fundplan
type Metrics struct {
	// Schedule computation metrics
	ScheduleComputations *prometheus.CounterVec
	ScheduleDuration     *prometheus.HistogramVec
	ScheduleMilestones   *prometheus.HistogramVec
	ScheduleUnscheduled  *prometheus.CounterVec

	// Schedule cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Error metrics (by error code from structured errors)
	Errors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		ScheduleComputations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundplan_schedule_computations_total",
				Help: "Total number of schedule computations",
			},
			[]string{"starting_point", "detail_level"},
		),
		ScheduleDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fundplan_schedule_duration_seconds",
				Help:    "Schedule computation duration in seconds",
				Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
			},
			[]string{"detail_level"},
		),
		ScheduleMilestones: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fundplan_schedule_milestones",
				Help:    "Number of dated milestones per schedule",
				Buckets: []float64{0, 5, 10, 15, 20, 25, 30, 50},
			},
			[]string{"detail_level"},
		),
		ScheduleUnscheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundplan_schedule_unscheduled_milestones_total",
				Help: "Total number of in-scope milestones left undated because an anchor was missing",
			},
			[]string{"starting_point", "detail_level"},
		),

		CacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fundplan_schedule_cache_hits_total",
				Help: "Total number of schedule cache hits",
			},
		),
		CacheMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fundplan_schedule_cache_misses_total",
				Help: "Total number of schedule cache misses",
			},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundplan_http_requests_total",
				Help: "Total number of HTTP API requests",
			},
			[]string{"route", "method", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fundplan_http_request_duration_seconds",
				Help:    "HTTP API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundplan_errors_total",
				Help: "Total number of errors by error code",
			},
			[]string{"error_code", "category"},
		),
	}
}

// ObserveSchedule records one computation. It implements schedule.Observer.
func (m *Metrics) ObserveSchedule(cfg schedule.Config, s *schedule.Schedule, elapsed time.Duration) {
	starting, detail := string(cfg.StartingPoint), string(cfg.DetailLevel)

	m.ScheduleComputations.WithLabelValues(starting, detail).Inc()
	m.ScheduleDuration.WithLabelValues(detail).Observe(elapsed.Seconds())
	m.ScheduleMilestones.WithLabelValues(detail).Observe(float64(s.MilestoneCount()))
	if n := len(s.Unscheduled); n > 0 {
		m.ScheduleUnscheduled.WithLabelValues(starting, detail).Add(float64(n))
	}
}

// CacheHit implements schedule.CacheObserver
func (m *Metrics) CacheHit() {
	m.CacheHits.Inc()
}

// CacheMiss implements schedule.CacheObserver
func (m *Metrics) CacheMiss() {
	m.CacheMisses.Inc()
}

// ObserveRequest records one HTTP request against its route pattern.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RecordError counts err by its error code, or "unknown" for uncoded errors.
func (m *Metrics) RecordError(err error) {
	if err == nil {
		return
	}
	code, ok := fperrors.CodeOf(err)
	if !ok {
		m.Errors.WithLabelValues("unknown", "unknown").Inc()
		return
	}
	m.Errors.WithLabelValues(string(code), code.Category()).Inc()
}
