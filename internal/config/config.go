// Package config defines the scheduler configuration and its loading hooks.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/limaJavier/meetscheduling/pkg/model"
	"github.com/limaJavier/meetscheduling/pkg/sat"
	"github.com/samber/lo"
)

// PortfolioSolver races every solver listed in Portfolio.
const PortfolioSolver = "portfolio"

// Accepted layouts for meet_start.
var meetStartLayouts = []string{time.RFC3339, "2006-01-02T15:04", "15:04"}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile enables a rotating JSON log file next to the console output.
	LogFile string `koanf:"log_file"`

	// Solver names the SAT backend, or "portfolio".
	Solver string `koanf:"solver"`

	// SolverPaths overrides the executable of external backends, keyed by solver name.
	SolverPaths map[string]string `koanf:"solver_paths"`

	// Portfolio lists the backends raced by the portfolio solver.
	Portfolio []string `koanf:"portfolio"`

	// Timeout bounds a solve; zero waits for a verdict.
	Timeout time.Duration `koanf:"timeout"`

	// SlotMinutes and MeetStart map slots onto wall-clock time.
	SlotMinutes int    `koanf:"slot_minutes"`
	MeetStart   string `koanf:"meet_start"`

	// AreaMode is "interval" or "start".
	AreaMode string `koanf:"area_mode"`

	// OverlapEncoding is "pairwise" or "window".
	OverlapEncoding string `koanf:"overlap_encoding"`

	// PairBudget is the overlapping start pair count above which compiling warns.
	PairBudget int `koanf:"pair_budget"`

	// MaxSolutions above one enumerates further schedules.
	MaxSolutions int `koanf:"max_solutions"`

	// MetricsAddr exposes Prometheus metrics when set, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Solver:          "gini",
		SolverPaths:     map[string]string{},
		Portfolio:       []string{"gini", "kissat", "cadical"},
		Timeout:         time.Minute,
		SlotMinutes:     20,
		MeetStart:       "09:00",
		AreaMode:        model.AreaInterval.String(),
		OverlapEncoding: model.EncodingPairwise.String(),
		PairBudget:      model.DefaultPairBudget,
		MaxSolutions:    1,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	known := sat.SolverNames()
	switch {
	case c.Solver != PortfolioSolver && !slices.Contains(known, c.Solver):
		return fmt.Errorf("%w: solver %q is not one of %v or %q", ErrInvalidConfig, c.Solver, known, PortfolioSolver)
	case c.Solver == PortfolioSolver && len(c.Portfolio) == 0:
		return fmt.Errorf("%w: portfolio has no solvers", ErrInvalidConfig)
	case c.Timeout < 0:
		return fmt.Errorf("%w: timeout must not be negative: %v", ErrInvalidConfig, c.Timeout)
	case c.SlotMinutes <= 0:
		return fmt.Errorf("%w: slot_minutes must be positive: %d", ErrInvalidConfig, c.SlotMinutes)
	case c.PairBudget < 0:
		return fmt.Errorf("%w: pair_budget must not be negative: %d", ErrInvalidConfig, c.PairBudget)
	case c.MaxSolutions < 1:
		return fmt.Errorf("%w: max_solutions must be at least one: %d", ErrInvalidConfig, c.MaxSolutions)
	}

	if unknown := lo.Without(c.Portfolio, known...); c.Solver == PortfolioSolver && len(unknown) > 0 {
		return fmt.Errorf("%w: unknown portfolio solvers %v", ErrInvalidConfig, unknown)
	}
	if _, err := model.ParseAreaMode(c.AreaMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := model.ParseOverlapEncoding(c.OverlapEncoding); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.MeetStartTime(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// MeetStartTime parses MeetStart; a bare "15:04" is taken on the current day in local time.
func (c *Config) MeetStartTime() (time.Time, error) {
	for _, layout := range meetStartLayouts {
		parsed, err := time.ParseInLocation(layout, c.MeetStart, time.Local)
		if err != nil {
			continue
		}
		if layout == "15:04" {
			year, month, day := time.Now().Date()
			parsed = time.Date(year, month, day, parsed.Hour(), parsed.Minute(), 0, 0, time.Local)
		}
		return parsed, nil
	}
	return time.Time{}, fmt.Errorf("meet_start %q matches none of %v", c.MeetStart, meetStartLayouts)
}

// Clock builds the slot to wall-clock conversion.
func (c *Config) Clock() (model.Clock, error) {
	meetStart, err := c.MeetStartTime()
	if err != nil {
		return model.Clock{}, err
	}
	return model.NewClock(meetStart, time.Duration(c.SlotMinutes)*time.Minute)
}

// SchedulerOptions translates the model related settings.
func (c *Config) SchedulerOptions() ([]model.Option, error) {
	areaMode, err := model.ParseAreaMode(c.AreaMode)
	if err != nil {
		return nil, err
	}
	encoding, err := model.ParseOverlapEncoding(c.OverlapEncoding)
	if err != nil {
		return nil, err
	}
	return []model.Option{
		model.WithAreaMode(areaMode),
		model.WithOverlapEncoding(encoding),
		model.WithPairBudget(c.PairBudget),
	}, nil
}

// NewSolver builds the configured backend.
func (c *Config) NewSolver() (sat.SATSolver, error) {
	if c.Solver != PortfolioSolver {
		return sat.NewSolver(c.Solver, c.SolverPaths[c.Solver])
	}

	members := make([]sat.SATSolver, 0, len(c.Portfolio))
	for _, name := range c.Portfolio {
		solver, err := sat.NewSolver(name, c.SolverPaths[name])
		if err != nil {
			return nil, err
		}
		members = append(members, solver)
	}
	return sat.NewPortfolioSolver(members...), nil
}
