package sat

import "context"

const DefaultKissatPath = "kissat"

type kissatSolver struct {
	path string
}

func NewKissatSolver(path string) SATSolver {
	if path == "" {
		path = DefaultKissatPath
	}
	return &kissatSolver{path: path}
}

func (solver *kissatSolver) Solve(ctx context.Context, instance SAT) (SATSolution, error) {
	return runDimacsSolver(ctx, "kissat", solver.path, []string{"-q", "--relaxed"}, instance)
}
