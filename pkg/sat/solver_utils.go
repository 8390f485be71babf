package sat

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Conventional exit codes of DIMACS solvers
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

// ParseSolution collects the literals of every "v" line of a solver output, dropping the terminating 0
func ParseSolution(solverOutput string) SATSolution {
	values := lo.Map(
		lo.Reduce(
			lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
				return len(line) > 0 && line[0] == 'v'
			}),
			func(values []string, line string, _ int) []string {
				return append(values, strings.Fields(line[1:])...)
			},
			[]string{},
		),
		func(valueStr string, _ int) int64 {
			value, err := strconv.ParseInt(valueStr, 10, 64)
			if err != nil {
				log.Panicf("invalid literal in solver output: %v", err)
			}
			return value
		},
	)
	return lo.Filter(values, func(value int64, _ int) bool { return value != 0 })
}

// runDimacsSolver feeds the instance through the standard input of an executable and interprets its exit code
func runDimacsSolver(ctx context.Context, name, path string, args []string, instance SAT) (SATSolution, error) {
	dimacs := instance.ToDIMACS() // Transform SAT into DIMACS-CNF string format

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into the solver's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%v: %w: %v", name, ErrInterrupted, ctx.Err())
	}
	return interpretExit(name, cmd, err, stderr.String(), func() SATSolution {
		return ParseSolution(stdOut.String())
	})
}

func interpretExit(name string, cmd *exec.Cmd, err error, stderr string, solution func() SATSolution) (SATSolution, error) {
	if cmd.ProcessState == nil { // The process never started
		return nil, fmt.Errorf("cannot start %v: %w", name, err)
	}

	switch cmd.ProcessState.ExitCode() {
	case exitSatisfiable:
		return solution(), nil
	case exitUnsatisfiable:
		return nil, nil
	case 0:
		// Solvers exit with 0 when they give up without an answer (e.g. on their own time limits)
		return nil, fmt.Errorf("%v: %w", name, ErrInterrupted)
	}
	return nil, fmt.Errorf("an error occurred during %v execution: %v : %v", name, err, stderr)
}
