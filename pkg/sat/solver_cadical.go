package sat

import "context"

const DefaultCadicalPath = "cadical"

type cadicalSolver struct {
	path string
}

func NewCadicalSolver(path string) SATSolver {
	if path == "" {
		path = DefaultCadicalPath
	}
	return &cadicalSolver{path: path}
}

func (solver *cadicalSolver) Solve(ctx context.Context, instance SAT) (SATSolution, error) {
	return runDimacsSolver(ctx, "cadical", solver.path, []string{"-q"}, instance)
}
