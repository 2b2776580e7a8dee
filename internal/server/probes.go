package server

import (
	"net/http"

	"github.com/felixgeelhaar/fundplan/internal/health"
)

// writeProbeResponse writes a probe result, using unhealthyStatus when the
// probe reports unhealthy.
func writeProbeResponse(w http.ResponseWriter, result *health.ProbeResult, unhealthyStatus int) {
	status := http.StatusOK
	if result.Status == health.StatusUnhealthy {
		status = unhealthyStatus
	}
	respondJSON(w, status, result)
}

// handleLiveness handles liveness probe requests.
// GET /health/live
//
// Returns:
//   - 200 OK: the process is running
//   - 200 OK (degraded status): the server is draining but still alive
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	writeProbeResponse(w, s.probeManager.CheckLiveness(r.Context()), http.StatusOK)
}

// handleReadiness handles readiness probe requests. It runs the catalog and
// scheduler checkers.
// GET /health/ready
//
// Returns:
//   - 200 OK: ready to serve schedules (possibly degraded)
//   - 503 Service Unavailable: draining, or a checker is unhealthy
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	writeProbeResponse(w, s.probeManager.CheckReadiness(r.Context()), http.StatusServiceUnavailable)
}

// handleStartup handles startup probe requests.
// GET /health/startup
//
// Returns:
//   - 200 OK: the server finished initialisation
//   - 503 Service Unavailable: still starting up
func (s *Server) handleStartup(w http.ResponseWriter, r *http.Request) {
	writeProbeResponse(w, s.probeManager.CheckStartup(r.Context()), http.StatusServiceUnavailable)
}
