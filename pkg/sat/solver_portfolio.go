package sat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Returned by the first solver reaching a verdict to cancel the rest of the portfolio
var errDecided = errors.New("sat: portfolio decided")

type verdict struct {
	solution SATSolution
}

// portfolioSolver races several solvers on the same instance and keeps the first verdict
type portfolioSolver struct {
	solvers []SATSolver
}

func NewPortfolioSolver(solvers ...SATSolver) SATSolver {
	return &portfolioSolver{solvers: solvers}
}

func (solver *portfolioSolver) Solve(ctx context.Context, instance SAT) (SATSolution, error) {
	if len(solver.solvers) == 0 {
		return nil, errors.New("portfolio has no solvers")
	}

	verdicts := make(chan verdict, len(solver.solvers))
	var mutex sync.Mutex
	var failures error

	group, groupCtx := errgroup.WithContext(ctx)
	for _, member := range solver.solvers {
		group.Go(func() error {
			solution, err := member.Solve(groupCtx, instance)
			if err != nil {
				// A failing member must not cancel the others
				mutex.Lock()
				failures = multierr.Append(failures, err)
				mutex.Unlock()
				return nil
			}
			verdicts <- verdict{solution: solution}
			return errDecided
		})
	}

	if err := group.Wait(); errors.Is(err, errDecided) {
		decided := <-verdicts
		return decided.solution, nil
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("portfolio: %w: %v", ErrInterrupted, ctx.Err())
	}
	if errs := multierr.Errors(failures); len(errs) > 0 && allInterrupted(errs) {
		return nil, fmt.Errorf("portfolio: %w", ErrInterrupted)
	}
	return nil, fmt.Errorf("every solver of the portfolio failed: %w", failures)
}

func allInterrupted(errs []error) bool {
	for _, err := range errs {
		if !errors.Is(err, ErrInterrupted) {
			return false
		}
	}
	return true
}
