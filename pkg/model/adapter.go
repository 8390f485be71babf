package model

import (
	"context"
	"errors"

	"github.com/limaJavier/meetscheduling/pkg/sat"
)

// SolverAdapter is the boundary between the compiler and the decision procedure. Enforced linear constraints
// are expressed as implications onto negated literals
type SolverAdapter interface {
	NewBoolVar(name string) sat.Literal
	AddLinearEquality(literals []sat.Literal, target int)
	AddLinearRange(literals []sat.Literal, low, high int)
	AddImplication(antecedent, consequent sat.Literal)
	// Solve may be called again after adding constraints
	Solve(ctx context.Context) (Status, Assignment, error)
	Stats() (variables uint64, clauses int)
}

// Assignment is a total boolean assignment indexed by variable
type Assignment []bool

func (assignment Assignment) Value(literal sat.Literal) bool {
	variable := literal.Var()
	if variable >= int64(len(assignment)) {
		return false
	}
	if literal < 0 {
		return !assignment[variable]
	}
	return assignment[variable]
}

// satAdapter encodes linear constraints into CNF and hands the instance to a SAT solver
type satAdapter struct {
	builder *sat.Builder
	solver  sat.SATSolver
}

func newSATAdapter(solver sat.SATSolver) *satAdapter {
	return &satAdapter{
		builder: sat.NewBuilder(),
		solver:  solver,
	}
}

func (adapter *satAdapter) NewBoolVar(name string) sat.Literal {
	return adapter.builder.NewVar(name)
}

func (adapter *satAdapter) AddLinearEquality(literals []sat.Literal, target int) {
	adapter.builder.Exactly(literals, target)
}

func (adapter *satAdapter) AddLinearRange(literals []sat.Literal, low, high int) {
	adapter.builder.Range(literals, low, high)
}

func (adapter *satAdapter) AddImplication(antecedent, consequent sat.Literal) {
	adapter.builder.Implies(antecedent, consequent)
}

func (adapter *satAdapter) Solve(ctx context.Context) (Status, Assignment, error) {
	instance := adapter.builder.Instance()

	solution, err := adapter.solver.Solve(ctx, instance)
	if errors.Is(err, sat.ErrInterrupted) {
		return Unknown, nil, nil
	} else if err != nil {
		return Unknown, nil, &SolverError{Err: err}
	} else if solution == nil {
		return Infeasible, nil, nil
	}

	// There is no objective, hence a model is only known to be feasible
	return Feasible, Assignment(solution.Assignment(instance.Variables)), nil
}

func (adapter *satAdapter) Stats() (uint64, int) {
	return adapter.builder.Variables(), adapter.builder.Clauses()
}

func (adapter *satAdapter) Instance() sat.SAT {
	return adapter.builder.Instance()
}
