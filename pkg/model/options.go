package model

import (
	"fmt"

	"github.com/limaJavier/meetscheduling/internal/metrics"
	"go.uber.org/zap"
)

type AreaMode int

const (
	AreaInterval AreaMode = iota // Same-area events never share an active slot
	AreaStart                    // Same-area events never start at the same slot
)

type OverlapEncoding int

const (
	EncodingPairwise OverlapEncoding = iota // One binary clause per overlapping pair of starts
	EncodingWindow                          // Two ordering auxiliaries per overlapping pair of starts
)

// Above this many overlapping start pairs the compile is expected to be slow and a warning is logged
const DefaultPairBudget = 200_000

func ParseAreaMode(value string) (AreaMode, error) {
	switch value {
	case "", "interval":
		return AreaInterval, nil
	case "start":
		return AreaStart, nil
	}
	return AreaInterval, fmt.Errorf("unknown area mode \"%v\"", value)
}

func (mode AreaMode) String() string {
	if mode == AreaStart {
		return "start"
	}
	return "interval"
}

func ParseOverlapEncoding(value string) (OverlapEncoding, error) {
	switch value {
	case "", "pairwise":
		return EncodingPairwise, nil
	case "window":
		return EncodingWindow, nil
	}
	return EncodingPairwise, fmt.Errorf("unknown overlap encoding \"%v\"", value)
}

func (encoding OverlapEncoding) String() string {
	if encoding == EncodingWindow {
		return "window"
	}
	return "pairwise"
}

// SolutionListener receives every schedule found, the first one with index 0
type SolutionListener func(index int, schedule Schedule)

type Option func(scheduler *Scheduler)

func WithLogger(logger *zap.Logger) Option {
	return func(scheduler *Scheduler) {
		if logger != nil {
			scheduler.logger = logger
		}
	}
}

func WithMetrics(recorder *metrics.Recorder) Option {
	return func(scheduler *Scheduler) {
		scheduler.metrics = recorder
	}
}

func WithAreaMode(mode AreaMode) Option {
	return func(scheduler *Scheduler) {
		scheduler.areaMode = mode
	}
}

func WithOverlapEncoding(encoding OverlapEncoding) Option {
	return func(scheduler *Scheduler) {
		scheduler.encoding = encoding
	}
}

// WithPairBudget sets the candidate pair count above which a warning is logged; zero disables the check
func WithPairBudget(budget int) Option {
	return func(scheduler *Scheduler) {
		scheduler.pairBudget = budget
	}
}

// WithSolutionListener reports up to limit distinct schedules, re-solving with the previous starts blocked
func WithSolutionListener(listener SolutionListener, limit int) Option {
	return func(scheduler *Scheduler) {
		scheduler.listener = listener
		scheduler.solutionLimit = limit
	}
}
