package sat

import (
	"context"
	"errors"
)

// ErrInterrupted is returned when a solver stops without a verdict (deadline, cancellation or the engine giving up)
var ErrInterrupted = errors.New("sat: search interrupted before a verdict")

type SATSolver interface {
	// Returns a solution of the SAT instance if satisfiable, else returns nil (these are valid outputs where error shall be nil)
	Solve(ctx context.Context, instance SAT) (SATSolution, error)
}
