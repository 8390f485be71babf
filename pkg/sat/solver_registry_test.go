package sat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSolver(t *testing.T) {
	t.Run("Known backends", func(t *testing.T) {
		for _, name := range SolverNames() {
			solver, err := NewSolver(name, "")

			assert.NoError(t, err)
			assert.NotNil(t, solver)
		}
		assert.Equal(t, []string{"cadical", "cryptominisat", "gini", "kissat", "minisat"}, SolverNames())
	})

	t.Run("Gini ignores the path", func(t *testing.T) {
		// Arrange
		solver, err := NewSolver("gini", "/nonexistent")
		require.NoError(t, err)

		// Act
		solution, err := solver.Solve(context.Background(), SAT{Variables: 1, Clauses: [][]int64{{-1}}})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, SATSolution{-1}, solution)
	})

	t.Run("Unknown backend", func(t *testing.T) {
		solver, err := NewSolver("glucose", "")

		assert.Nil(t, solver)
		assert.ErrorContains(t, err, "glucose is not a valid solver")
	})
}
