// Package health provides the checks behind the server's liveness,
// readiness and startup probes.
//
// A Checker verifies one capability the server needs to answer requests,
// such as a loaded catalog or a working scheduler. Manager runs checkers
// in parallel and ProbeManager turns the results into probe responses.
package health

import (
	"context"
	"time"
)

// Checker verifies one capability.
type Checker interface {
	// Name is lowercase with hyphens, e.g. "catalog".
	Name() string

	// Check must respect the context deadline.
	Check(ctx context.Context) *Result
}

// Status represents the health check status.
type Status string

const (
	// StatusHealthy means fully operational.
	StatusHealthy Status = "healthy"

	// StatusDegraded means serving, with warnings worth a look.
	StatusDegraded Status = "degraded"

	// StatusUnhealthy means requests will fail.
	StatusUnhealthy Status = "unhealthy"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Result is the outcome of one check.
type Result struct {
	Status  Status         `json:"status"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Latency time.Duration  `json:"latency_ns"`
}

// NewResult creates a result with an empty details map.
func NewResult(status Status, message string) *Result {
	return &Result{
		Status:  status,
		Message: message,
		Details: make(map[string]any),
	}
}

// WithDetail adds a detail and returns the result for chaining.
func (r *Result) WithDetail(key string, value any) *Result {
	r.Details[key] = value
	return r
}

// Healthy creates a healthy result.
func Healthy(message string) *Result {
	return NewResult(StatusHealthy, message)
}

// Degraded creates a degraded result.
func Degraded(message string) *Result {
	return NewResult(StatusDegraded, message)
}

// Unhealthy creates an unhealthy result.
func Unhealthy(message string) *Result {
	return NewResult(StatusUnhealthy, message)
}
