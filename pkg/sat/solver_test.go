package sat

import (
	"context"
	"errors"
	"math/rand/v2"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGini(t *testing.T) {
	solver := NewGiniSolver()

	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})

	t.Run("Unsatisfiable instance", func(t *testing.T) {
		// Arrange
		instance := SAT{Variables: 2, Clauses: [][]int64{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}}}

		// Act
		solution, err := solver.Solve(context.Background(), instance)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, solution)
	})

	t.Run("Variables absent from clauses are reported", func(t *testing.T) {
		// Arrange
		instance := SAT{Variables: 3, Clauses: [][]int64{{2}, {-1}}}

		// Act
		solution, err := solver.Solve(context.Background(), instance)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, SATSolution{-1, 2, -3}, solution)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Act
		solution, err := solver.Solve(ctx, generateSATInstance(10, 20))

		// Assert
		assert.Nil(t, solution)
		assert.ErrorIs(t, err, ErrInterrupted)
	})

	t.Run("Deadline that is not reached", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		instance := SAT{Variables: 2, Clauses: [][]int64{{1}, {-1, 2}}}

		// Act
		solution, err := solver.Solve(ctx, instance)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, SATSolution{1, 2}, solution)
	})
}

func TestKissat(t *testing.T) {
	requireExecutable(t, DefaultKissatPath)
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, NewKissatSolver(""))
	})
}

func TestCadical(t *testing.T) {
	requireExecutable(t, DefaultCadicalPath)
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, NewCadicalSolver(""))
	})
}

func TestCryptominisat(t *testing.T) {
	requireExecutable(t, DefaultCryptominisatPath)
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, NewCryptominisatSolver(""))
	})
}

func TestMinisat(t *testing.T) {
	requireExecutable(t, DefaultMinisatPath)
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, NewMinisatSolver(""))
	})
}

func TestMissingExecutable(t *testing.T) {
	// Arrange
	solver := NewKissatSolver("/nonexistent/kissat")

	// Act
	solution, err := solver.Solve(context.Background(), SAT{Variables: 1, Clauses: [][]int64{{1}}})

	// Assert
	assert.Nil(t, solution)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInterrupted))
}

func TestParseSolution(t *testing.T) {
	t.Run("Multiple value lines", func(t *testing.T) {
		output := strings.Join([]string{
			"c kissat output",
			"s SATISFIABLE",
			"v 1 -2 3",
			"v -4 5 0",
			"",
		}, "\n")

		assert.Equal(t, SATSolution{1, -2, 3, -4, 5}, ParseSolution(output))
	})

	t.Run("Empty model", func(t *testing.T) {
		solution := ParseSolution("s SATISFIABLE\nv 0\n")

		assert.NotNil(t, solution)
		assert.Empty(t, solution)
	})
}

func TestToDIMACS(t *testing.T) {
	// Arrange
	instance := SAT{
		Variables: 3,
		Clauses:   [][]int64{{1, -2}, {3}},
		Names:     map[int64]string{3: "c", 1: "a"},
	}

	// Act
	dimacs := instance.ToDIMACS()

	// Assert
	assert.Equal(t, "c 1 a\nc 3 c\np cnf 3 2\n1 -2 0\n3 0\n", dimacs)
}

func randomExecution(t *testing.T, solver SATSolver) {
	for range 20 {
		//** Arrange
		literals := uint64(rand.IntN(10) + 1)
		clauses := rand.IntN(30) + 1
		instance := generateSATInstance(literals, clauses)

		//** Act
		solution, err := solver.Solve(context.Background(), instance)

		//** Assert
		require.NoError(t, err)
		if solution == nil {
			assert.False(t, bruteForceSatisfiable(instance), "instance reported unsatisfiable has a model")
			continue
		}
		assert.True(t, assertSATSolution(instance, solution), "wrong answer")
	}
}

func requireExecutable(t *testing.T, name string) {
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%v is not available: %v", name, err)
	}
}
