package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
	"github.com/felixgeelhaar/fundplan/internal/health"
	"github.com/felixgeelhaar/fundplan/internal/metrics"
	"github.com/felixgeelhaar/fundplan/internal/schedule"
	"github.com/felixgeelhaar/fundplan/internal/server"
	"github.com/felixgeelhaar/fundplan/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scheduler over HTTP",
	Long: `Start an HTTP server exposing the scheduler.

Endpoints:
  POST /v1/schedule        compute a schedule (?view=rows for flat rows)
  GET  /v1/catalog         the loaded catalog, fingerprint and lint warnings
  GET  /v1/presets         available presets
  GET  /v1/presets/{name}  one preset
  GET  /metrics            Prometheus metrics
  GET  /health/live        liveness probe
  GET  /health/ready       readiness probe (catalog and scheduler checks)
  GET  /health/startup     startup probe

The server drains connections and shuts down gracefully on SIGTERM or
SIGINT.`,
	Example: `  fundplan serve
  fundplan serve --address :9090 --shutdown-timeout 60s

  curl -s localhost:8080/v1/schedule \
    -d '{"preset":"fund-ii","first_close":"2026-03-02","final_close":"2026-09-30"}'`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveFlags struct {
	address         string
	requestTimeout  time.Duration
	shutdownTimeout time.Duration
	cacheSize       int
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.address, "address", "", "address to listen on (default from config, else :8080)")
	f.DurationVar(&serveFlags.requestTimeout, "request-timeout", 0, "per-request timeout for API calls (default from config, else 10s)")
	f.DurationVar(&serveFlags.shutdownTimeout, "shutdown-timeout", 0, "maximum time to drain connections on shutdown (default from config, else 15s)")
	f.IntVar(&serveFlags.cacheSize, "cache-size", 0, "number of schedules kept in the LRU cache (default from config, else 256)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv, address, err := buildServer(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	writeLine(w, version.GetInfo().String())
	writeLine(w, fmt.Sprintf("Listening on %s", address))
	writeLine(w, "Press Ctrl+C to stop the server")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	ctx := cmd.Context()
	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	// the command context is already cancelled; give draining its own deadline
	if err := srv.Shutdown(context.WithoutCancel(ctx)); err != nil {
		return fperrors.Wrap(fperrors.ErrCodeServerStart, "graceful shutdown failed", err)
	}
	if err := <-serverErr; err != nil {
		return err
	}
	writeLine(w, "Server stopped gracefully")
	return nil
}

// buildServer wires catalog, scheduler cache, metrics and probes into a
// server using config values overridden by flags.
func buildServer(cmd *cobra.Command) (*server.Server, string, error) {
	cfg := currentConfig()
	flags := cmd.Flags()

	address := cfg.Server.Address
	if flags.Changed("address") {
		address = serveFlags.address
	}
	requestTimeout := cfg.Server.RequestTimeout
	if flags.Changed("request-timeout") {
		requestTimeout = serveFlags.requestTimeout
	}
	shutdownTimeout := cfg.Server.ShutdownTimeout
	if flags.Changed("shutdown-timeout") {
		shutdownTimeout = serveFlags.shutdownTimeout
	}
	cacheSize := cfg.Cache.Size
	if flags.Changed("cache-size") {
		cacheSize = serveFlags.cacheSize
	}
	if cacheSize <= 0 {
		cacheSize = schedule.DefaultCacheSize
	}

	c, err := loadCatalog()
	if err != nil {
		return nil, "", err
	}
	for _, warning := range schedule.Lint(c) {
		logger.Warn("catalog lint warning", "warning", warning)
	}

	registry, m := metrics.NewRegistry()
	computer, err := schedule.NewCachedScheduler(
		schedule.NewScheduler(c, schedule.WithLogger(logger), schedule.WithObserver(m)),
		cacheSize,
		m,
	)
	if err != nil {
		return nil, "", err
	}

	pm := health.NewProbeManager(version.GetInfo().Version)
	pm.AddChecker(health.NewCatalogChecker(c))
	pm.AddChecker(health.NewSchedulerChecker(computer))

	srv := server.NewServer(server.Config{
		Address:         address,
		RequestTimeout:  requestTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, server.Dependencies{
		Probes:   pm,
		Computer: computer,
		Presets:  newPresetLoader(),
		Metrics:  m,
		Gatherer: registry,
		Logger:   logger,
	})
	return srv, address, nil
}
