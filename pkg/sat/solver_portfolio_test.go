package sat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSolver answers after a delay unless its context is cancelled first
type stubSolver struct {
	delay    time.Duration
	solution SATSolution
	err      error
}

func (solver *stubSolver) Solve(ctx context.Context, _ SAT) (SATSolution, error) {
	select {
	case <-time.After(solver.delay):
		return solver.solution, solver.err
	case <-ctx.Done():
		return nil, ErrInterrupted
	}
}

func TestPortfolio(t *testing.T) {
	instance := SAT{Variables: 1, Clauses: [][]int64{{1}}}

	t.Run("First verdict wins", func(t *testing.T) {
		// Arrange
		solver := NewPortfolioSolver(
			&stubSolver{delay: time.Hour, solution: SATSolution{-1}},
			&stubSolver{delay: time.Millisecond, solution: SATSolution{1}},
		)

		// Act
		solution, err := solver.Solve(context.Background(), instance)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, SATSolution{1}, solution)
	})

	t.Run("Unsatisfiable verdict is kept", func(t *testing.T) {
		// Arrange
		solver := NewPortfolioSolver(&stubSolver{delay: time.Millisecond})

		// Act
		solution, err := solver.Solve(context.Background(), instance)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, solution)
	})

	t.Run("Failures do not cancel healthy solvers", func(t *testing.T) {
		// Arrange
		solver := NewPortfolioSolver(
			&stubSolver{err: errors.New("crashed")},
			&stubSolver{delay: 20 * time.Millisecond, solution: SATSolution{1}},
		)

		// Act
		solution, err := solver.Solve(context.Background(), instance)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, SATSolution{1}, solution)
	})

	t.Run("All solvers fail", func(t *testing.T) {
		// Arrange
		solver := NewPortfolioSolver(
			&stubSolver{err: errors.New("crashed")},
			&stubSolver{err: errors.New("segfault")},
		)

		// Act
		solution, err := solver.Solve(context.Background(), instance)

		// Assert
		assert.Nil(t, solution)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrInterrupted))
		assert.Contains(t, err.Error(), "crashed")
		assert.Contains(t, err.Error(), "segfault")
	})

	t.Run("Deadline expires", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		solver := NewPortfolioSolver(&stubSolver{delay: time.Hour})

		// Act
		solution, err := solver.Solve(ctx, instance)

		// Assert
		assert.Nil(t, solution)
		assert.ErrorIs(t, err, ErrInterrupted)
	})

	t.Run("Gini member", func(t *testing.T) {
		// Arrange
		solver := NewPortfolioSolver(NewGiniSolver(), &stubSolver{delay: time.Hour})

		// Act
		solution, err := solver.Solve(context.Background(), instance)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, SATSolution{1}, solution)
	})
}
