package sat

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const DefaultMinisatPath = "minisat"

type minisatSolver struct {
	path string
}

func NewMinisatSolver(path string) SATSolver {
	if path == "" {
		path = DefaultMinisatPath
	}
	return &minisatSolver{path: path}
}

func (solver *minisatSolver) Solve(ctx context.Context, instance SAT) (SATSolution, error) {
	dimacs := instance.ToDIMACS() // Transform SAT into DIMACS-CNF string format

	// Create a temporary file to hold the DIMACS content
	inputTempFile, err := os.CreateTemp("", "dimacs-*.cnf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(inputTempFile.Name()) // Ensure the file is removed after execution

	outputTempFile, err := os.CreateTemp("", "minisat_output-*.cnf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(outputTempFile.Name()) // Ensure the file is removed after execution
	outputTempFile.Close()

	// Write the DIMACS content to the temporary file
	if _, err := inputTempFile.WriteString(dimacs); err != nil {
		return nil, fmt.Errorf("failed to write DIMACS to temporary file: %w", err)
	}
	if err := inputTempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}

	cmd := exec.CommandContext(ctx, solver.path, "-verb=0", inputTempFile.Name(), outputTempFile.Name())

	var stderr strings.Builder
	cmd.Stderr = &stderr

	err = cmd.Run()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("minisat: %w: %v", ErrInterrupted, ctx.Err())
	}

	return interpretExit("minisat", cmd, err, stderr.String(), func() SATSolution {
		output, err := os.ReadFile(outputTempFile.Name()) // Read the output file
		if err != nil {
			log.Panicf("cannot read minisat output file: %v", err)
		}
		return solver.parseSolution(string(output))
	})
}

// Minisat writes "SAT" on the first line and the model on the second one
func (solver *minisatSolver) parseSolution(solverOutput string) SATSolution {
	lines := strings.Split(solverOutput, "\n")
	if len(lines) < 2 {
		return SATSolution{}
	}
	solution := lo.FilterMap(strings.Fields(lines[1]), func(valueStr string, _ int) (int64, bool) {
		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			log.Panicf("invalid literal in solver output: %v", err)
		}
		return value, value != 0
	})
	return solution
}
