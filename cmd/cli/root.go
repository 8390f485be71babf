package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/limaJavier/meetscheduling/internal/config"
	"github.com/limaJavier/meetscheduling/internal/logging"
	"github.com/limaJavier/meetscheduling/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes follow the SAT competition convention
const (
	exitUnknown       = 0
	exitError         = 1
	exitSatisfiable   = 10
	exitUnverified    = 15 // A schedule was found but does not pass verification
	exitUnsatisfiable = 20
)

// exitCode ends a command with a specific process status
type exitCode int

func (code exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(code))
}

type overrides struct {
	logLevel        string
	logFile         string
	solver          string
	timeout         time.Duration
	areaMode        string
	overlapEncoding string
	maxSolutions    int
	metricsAddr     string
}

type app struct {
	stdout, stderr io.Writer
	configPath     string
	overrides      overrides

	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
}

func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(&app{stdout: stdout, stderr: stderr})
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(context.Background())
	var code exitCode
	switch {
	case errors.As(err, &code):
		return int(code)
	case err != nil:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	return 0
}

func newRootCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "meet",
		Short:         "Compile meet descriptions into SAT and decode feasible schedules",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "YAML configuration file (defaults to $MEET_CONFIG)")
	flags.StringVar(&app.overrides.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	flags.StringVar(&app.overrides.logFile, "log-file", "", "Rotating log file receiving every level")
	flags.StringVar(&app.overrides.solver, "solver", "", "SAT backend: cadical|cryptominisat|gini|kissat|minisat|portfolio")
	flags.DurationVar(&app.overrides.timeout, "timeout", 0, "Solve deadline, zero waits for a verdict")
	flags.StringVar(&app.overrides.areaMode, "area-mode", "", "Area exclusivity: interval|start")
	flags.StringVar(&app.overrides.overlapEncoding, "encoding", "", "Overlap encoding: pairwise|window")
	flags.IntVar(&app.overrides.maxSolutions, "max-solutions", 0, "Number of distinct schedules to enumerate")
	flags.StringVar(&app.overrides.metricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address while running")

	cmd.AddCommand(solveCmd(app), compileCmd(app), verifyCmd(app))
	return cmd
}

// setup loads the configuration, applies the flags that were set and builds the logger
func (app *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context(), app.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = app.overrides.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = app.overrides.logFile
	}
	if flags.Changed("solver") {
		cfg.Solver = app.overrides.solver
	}
	if flags.Changed("timeout") {
		cfg.Timeout = app.overrides.timeout
	}
	if flags.Changed("area-mode") {
		cfg.AreaMode = app.overrides.areaMode
	}
	if flags.Changed("encoding") {
		cfg.OverlapEncoding = app.overrides.overlapEncoding
	}
	if flags.Changed("max-solutions") {
		cfg.MaxSolutions = app.overrides.maxSolutions
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = app.overrides.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile, Console: app.stderr})
	if err != nil {
		return err
	}

	app.cfg, app.logger = cfg, logger
	app.registry = prometheus.NewRegistry()
	return nil
}

// serveMetrics exposes the registry until the returned function is called
func (app *app) serveMetrics() (stop func()) {
	if app.cfg.MetricsAddr == "" {
		return func() {}
	}

	server := &http.Server{
		Addr:              app.cfg.MetricsAddr,
		Handler:           promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	app.logger.Info("serving metrics", zap.String("addr", app.cfg.MetricsAddr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}

func (app *app) recorder() *metrics.Recorder {
	return metrics.NewRecorder(metrics.WithRegistry(app.registry))
}
