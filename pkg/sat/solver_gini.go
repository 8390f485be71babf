package sat

import (
	"context"
	"fmt"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// How often a running search checks for context cancellation
const giniPollInterval = 5 * time.Millisecond

// giniSolver runs the pure Go gini solver in-process, so no executable is required
type giniSolver struct{}

func NewGiniSolver() SATSolver {
	return &giniSolver{}
}

func (solver *giniSolver) Solve(ctx context.Context, instance SAT) (SATSolution, error) {
	g := gini.New()
	for _, clause := range instance.Clauses {
		for _, literal := range clause {
			g.Add(z.Dimacs2Lit(int(literal)))
		}
		g.Add(z.LitNull) // Terminate clause
	}

	var result int
	if ctx.Done() == nil { // Nothing can interrupt the search
		result = g.Solve()
	} else {
		var err error
		if result, err = solveWithContext(ctx, g); err != nil {
			return nil, err
		}
	}

	switch result {
	case 1:
		return giniModel(g, instance.Variables), nil
	case -1:
		return nil, nil
	}
	return nil, fmt.Errorf("gini: %w", ErrInterrupted)
}

func solveWithContext(ctx context.Context, g *gini.Gini) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("gini: %w: %v", ErrInterrupted, err)
	}

	search := g.GoSolve()
	ticker := time.NewTicker(giniPollInterval)
	defer ticker.Stop()

	for {
		if result, done := search.Test(); done {
			return result, nil
		}
		select {
		case <-ctx.Done():
			// The search may have finished right before being stopped
			if result := search.Stop(); result != 0 {
				return result, nil
			}
			return 0, fmt.Errorf("gini: %w: %v", ErrInterrupted, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Builds a DIMACS model out of gini's assignment; variables gini never saw are reported false
func giniModel(g *gini.Gini, variables uint64) SATSolution {
	maxVar := uint64(g.MaxVar())
	solution := make(SATSolution, 0, variables)
	for variable := uint64(1); variable <= variables; variable++ {
		if variable <= maxVar && g.Value(z.Var(variable).Pos()) {
			solution = append(solution, int64(variable))
		} else {
			solution = append(solution, -int64(variable))
		}
	}
	return solution
}
