package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limaJavier/meetscheduling/internal/metrics"
	"github.com/limaJavier/meetscheduling/pkg/sat"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type SolveResult struct {
	RunID     uuid.UUID     `json:"run_id"`
	Status    Status        `json:"status"`
	Schedule  *Schedule     `json:"schedule,omitempty"` // Present only when Status.Solved()
	Variables uint64        `json:"variables"`
	Clauses   int           `json:"clauses"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Scheduler compiles meets into boolean models and decodes the solver's answer. It keeps no state between solves
type Scheduler struct {
	solver        sat.SATSolver
	logger        *zap.Logger
	metrics       *metrics.Recorder
	areaMode      AreaMode
	encoding      OverlapEncoding
	pairBudget    int
	listener      SolutionListener
	solutionLimit int
}

func NewScheduler(solver sat.SATSolver, opts ...Option) *Scheduler {
	scheduler := &Scheduler{
		solver:     solver,
		logger:     zap.NewNop(),
		areaMode:   AreaInterval,
		encoding:   EncodingPairwise,
		pairBudget: DefaultPairBudget,
	}
	for _, opt := range opts {
		opt(scheduler)
	}
	return scheduler
}

func (scheduler *Scheduler) Solve(ctx context.Context, meet Meet) (SolveResult, error) {
	started := time.Now()
	result := SolveResult{RunID: uuid.New()}
	logger := scheduler.logger.With(zap.Stringer("run", result.RunID))

	//** Validate input
	if err := meet.Validate(); err != nil {
		scheduler.metrics.ConfigurationError()
		logger.Warn("meet rejected", zap.Error(err))
		return result, err
	}

	//** Compile model
	adapter := newSATAdapter(scheduler.solver)
	matrix, err := scheduler.compile(meet, adapter, logger)
	if err != nil {
		scheduler.metrics.ConfigurationError()
		return result, err
	}
	result.Variables, result.Clauses = adapter.Stats()

	//** Solve
	status, assignment, err := adapter.Solve(ctx)
	result.Status = status
	if err != nil {
		result.Elapsed = time.Since(started)
		scheduler.metrics.ObserveSolve("error", result.Elapsed, result.Variables, result.Clauses)
		logger.Error("solver failed", zap.Error(err), zap.Duration("elapsed", result.Elapsed))
		return result, err
	}

	//** Decode
	if status.Solved() {
		schedule, err := Decode(meet, matrix, assignment)
		if err != nil {
			return result, &SolverError{Err: err}
		}
		result.Schedule = &schedule

		if scheduler.listener != nil {
			scheduler.enumerate(ctx, meet, matrix, adapter, assignment, schedule, logger)
		}
	}

	result.Elapsed = time.Since(started)
	scheduler.metrics.ObserveSolve(status.String(), result.Elapsed, result.Variables, result.Clauses)
	logger.Info("meet solved",
		zap.Stringer("status", status),
		zap.Uint64("variables", result.Variables),
		zap.Int("clauses", result.Clauses),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// Compile returns the CNF instance a solve would hand to the solver
func (scheduler *Scheduler) Compile(meet Meet) (sat.SAT, error) {
	if err := meet.Validate(); err != nil {
		return sat.SAT{}, err
	}

	adapter := newSATAdapter(scheduler.solver)
	if _, err := scheduler.compile(meet, adapter, scheduler.logger); err != nil {
		return sat.SAT{}, err
	}
	return adapter.Instance(), nil
}

func (scheduler *Scheduler) compile(meet Meet, adapter SolverAdapter, logger *zap.Logger) (*StartMatrix, error) {
	if scheduler.pairBudget > 0 {
		if pairs := candidatePairs(meet, scheduler.areaMode); pairs > scheduler.pairBudget {
			logger.Warn("overlap enumeration exceeds the pair budget",
				zap.Int("pairs", pairs),
				zap.Int("budget", scheduler.pairBudget),
				zap.Int("slots", meet.Slots),
			)
		}
	}

	matrix, err := NewStartMatrix(meet, adapter)
	if err != nil {
		return nil, err
	}

	state := constraintState{
		meet:      meet,
		matrix:    matrix,
		adapter:   adapter,
		areaMode:  scheduler.areaMode,
		encoding:  scheduler.encoding,
		separated: make(map[[2]int]bool),
	}
	for _, generator := range constraintGenerators {
		posted := generator.generate(state)
		logger.Debug("constraints generated", zap.String("generator", generator.name), zap.Int("constraints", posted))
	}

	return matrix, nil
}

// enumerate reports the first schedule and keeps asking for different start assignments until the limit is reached
func (scheduler *Scheduler) enumerate(ctx context.Context, meet Meet, matrix *StartMatrix, adapter SolverAdapter, assignment Assignment, schedule Schedule, logger *zap.Logger) {
	scheduler.listener(0, schedule)

	for index := 1; index < scheduler.solutionLimit; index++ {
		// Forbid the current combination of starts
		chosen := lo.Filter(matrix.Literals(), func(literal sat.Literal, _ int) bool { return assignment.Value(literal) })
		adapter.AddLinearRange(chosen, 0, len(chosen)-1)

		status, next, err := adapter.Solve(ctx)
		if err != nil || !status.Solved() {
			logger.Debug("solution enumeration stopped", zap.Int("solutions", index), zap.Stringer("status", status), zap.Error(err))
			return
		}

		schedule, err := Decode(meet, matrix, next)
		if err != nil {
			logger.Error("cannot decode enumerated solution", zap.Error(err))
			return
		}
		scheduler.listener(index, schedule)
		assignment = next
	}
}
