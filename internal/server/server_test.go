package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/fundplan/internal/catalog"
	"github.com/felixgeelhaar/fundplan/internal/health"
	"github.com/felixgeelhaar/fundplan/internal/metrics"
	"github.com/felixgeelhaar/fundplan/internal/preset"
	"github.com/felixgeelhaar/fundplan/internal/schedule"
)

type fixture struct {
	server  *Server
	probes  *health.ProbeManager
	metrics *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	c := catalog.MustLoadBuiltin()
	reg, m := metrics.NewRegistry()

	computer, err := schedule.NewCachedScheduler(
		schedule.NewScheduler(c, schedule.WithObserver(m)),
		schedule.DefaultCacheSize,
		m,
	)
	require.NoError(t, err)

	presets := preset.NewLoader()
	presets.SetUserDir(t.TempDir())
	presets.SetProjectDir(t.TempDir())

	pm := health.NewProbeManager("test")
	pm.AddChecker(health.NewCatalogChecker(c))
	pm.AddChecker(health.NewSchedulerChecker(computer))

	s := NewServer(Config{Address: "127.0.0.1:0"}, Dependencies{
		Probes:   pm,
		Computer: computer,
		Presets:  presets,
		Metrics:  m,
		Gatherer: reg,
	})
	return &fixture{server: s, probes: pm, metrics: m}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestNewServerDefaults(t *testing.T) {
	s := NewServer(Config{Address: ":8080"}, Dependencies{Probes: health.NewProbeManager("1.0.0")})

	assert.Equal(t, DefaultShutdownTimeout, s.shutdownTimeout)
	assert.Equal(t, DefaultReadTimeout, s.httpServer.ReadTimeout)
	assert.Equal(t, DefaultWriteTimeout, s.httpServer.WriteTimeout)
	assert.Equal(t, DefaultIdleTimeout, s.httpServer.IdleTimeout)
	assert.NotNil(t, s.logger)
}

func TestProbes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/health/startup", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "startup fails before initialisation")

	f.probes.MarkInitialized()

	rec = f.do(t, http.MethodGet, "/health/startup", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, health.StatusHealthy, decode[health.ProbeResult](t, rec).Status)

	rec = f.do(t, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ready := decode[health.ProbeResult](t, rec)
	assert.Contains(t, ready.Checks, "catalog")
	assert.Contains(t, ready.Checks, "scheduler")

	f.probes.MarkShutdown()

	rec = f.do(t, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = f.do(t, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, health.StatusDegraded, decode[health.ProbeResult](t, rec).Status)
}

func TestProbes_MethodNotAllowed(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/health/live", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleCatalog(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode[struct {
		Fingerprint string              `json:"fingerprint"`
		Schema      string              `json:"schema"`
		Phases      []catalog.Phase     `json:"phases"`
		Milestones  []catalog.Milestone `json:"milestones"`
	}](t, rec)

	c := catalog.MustLoadBuiltin()
	assert.Equal(t, c.Fingerprint(), body.Fingerprint)
	assert.Equal(t, c.Schema, body.Schema)
	assert.Len(t, body.Phases, len(c.Phases))
	assert.Len(t, body.Milestones, len(c.Milestones))
}

func TestHandlePresets(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/presets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[struct {
		Presets []preset.Preset `json:"presets"`
	}](t, rec)
	names := make([]string, 0, len(list.Presets))
	for _, p := range list.Presets {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "fund-ii")
	assert.Contains(t, names, "emerging-manager")

	rec = f.do(t, http.MethodGet, "/v1/presets/fund-ii", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[preset.Preset](t, rec)
	assert.Equal(t, "fund-ii", got.Name)
	assert.Equal(t, preset.SourceBuiltin, got.Source)

	rec = f.do(t, http.MethodGet, "/v1/presets/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PRESET-001", decode[errorResponse](t, rec).Code)
}

func TestHandleSchedule(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/schedule",
		`{"first_close": "2026-03-02", "final_close": "2026-09-30", "jurisdiction": "delaware"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var sched schedule.Schedule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sched))

	assert.Equal(t, "delaware", string(sched.Config.Jurisdiction))
	assert.Equal(t, schedule.DefaultConfig().Strategy, sched.Config.Strategy)
	assert.NotEmpty(t, sched.Phases)

	ends := make(map[string]string)
	for _, p := range sched.Phases {
		for _, m := range p.Milestones {
			ends[m.ID] = m.End.String()
		}
	}
	assert.Equal(t, "2026-03-02", ends["first-close"])
	assert.Equal(t, "2026-09-30", ends["final-close"])

	again := f.do(t, http.MethodPost, "/v1/schedule",
		`{"jurisdiction": "delaware", "final_close": "2026-09-30", "first_close": "2026-03-02"}`)
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, sched.ID, decode[schedule.Schedule](t, again).ID, "same inputs yield the same id")

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheMisses))
}

func TestHandleSchedule_PresetThenFields(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/schedule",
		`{"preset": "emerging-manager", "jurisdiction": "cayman", "first_close": "2026-03-02", "final_close": "2026-09-30"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	sched := decode[schedule.Schedule](t, rec)
	assert.Equal(t, "under-50m", string(sched.Config.FundSize), "preset applied")
	assert.Equal(t, "cayman", string(sched.Config.Jurisdiction), "explicit field wins over preset")
}

func TestHandleSchedule_Warnings(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/schedule",
		`{"jurisdiction": "atlantis", "first_close": "2026-03-02", "final_close": "2026-09-30"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Warnings []string `json:"warnings"`
	}](t, rec)
	require.Len(t, body.Warnings, 1)
	assert.Contains(t, body.Warnings[0], "atlantis")
}

func TestHandleSchedule_Rows(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/schedule?view=rows",
		`{"detail_level": "simple", "first_close": "2026-03-02", "final_close": "2026-09-30"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[rowsResponse](t, rec)
	assert.NotEmpty(t, body.ID)
	require.NotEmpty(t, body.Rows)
	for _, row := range body.Rows {
		assert.False(t, row.End.Before(row.Start), "row %s ends before it starts", row.Milestone)
	}
}

func TestHandleSchedule_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "empty body",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantCode:   "SERVER-001",
		},
		{
			name:       "malformed json",
			body:       `{"first_close": `,
			wantStatus: http.StatusBadRequest,
			wantCode:   "SERVER-001",
		},
		{
			name:       "bad date",
			body:       `{"first_close": "03/02/2026", "final_close": "2026-09-30"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "SERVER-001",
		},
		{
			name:       "missing anchor date",
			body:       `{"first_close": "2026-03-02"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "CONFIG-001",
		},
		{
			name:       "inverted anchors",
			body:       `{"first_close": "2026-09-30", "final_close": "2026-03-02"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "CONFIG-002",
		},
		{
			name:       "unknown preset",
			body:       `{"preset": "nope", "first_close": "2026-03-02", "final_close": "2026-09-30"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "PRESET-001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(t, http.MethodPost, "/v1/schedule", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			resp := decode[errorResponse](t, rec)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)

	f.do(t, http.MethodGet, "/v1/catalog", "")

	rec := f.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fundplan_http_requests_total{method="GET",route="/v1/catalog",status="200"} 1`)
}

func TestServeAndShutdown(t *testing.T) {
	f := newFixture(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- f.server.Serve(ln) }()

	url := "http://" + ln.Addr().String() + "/health/startup"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, f.server.Shutdown(context.Background()))
	assert.True(t, f.probes.IsShuttingDown())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
