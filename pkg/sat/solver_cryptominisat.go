package sat

import "context"

const DefaultCryptominisatPath = "cryptominisat5"

type cryptominisatSolver struct {
	path string
}

func NewCryptominisatSolver(path string) SATSolver {
	if path == "" {
		path = DefaultCryptominisatPath
	}
	return &cryptominisatSolver{path: path}
}

func (solver *cryptominisatSolver) Solve(ctx context.Context, instance SAT) (SATSolution, error) {
	return runDimacsSolver(ctx, "cryptominisat", solver.path, []string{"--verb", "0"}, instance)
}
