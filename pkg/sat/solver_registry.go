package sat

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

var solvers = map[string]func(path string) SATSolver{
	"gini":          func(string) SATSolver { return NewGiniSolver() },
	"kissat":        NewKissatSolver,
	"cadical":       NewCadicalSolver,
	"cryptominisat": NewCryptominisatSolver,
	"minisat":       NewMinisatSolver,
}

// SolverNames lists the backends NewSolver accepts, in alphabetical order
func SolverNames() []string {
	names := lo.Keys(solvers)
	slices.Sort(names)
	return names
}

// NewSolver builds a backend by name; an empty path selects the executable's default name
func NewSolver(name, path string) (SATSolver, error) {
	constructor, ok := solvers[name]
	if !ok {
		return nil, fmt.Errorf("%v is not a valid solver: %v", name, SolverNames())
	}
	return constructor(path), nil
}
