package sat

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// SATSolution holds a model in DIMACS convention: v for true, -v for false
type SATSolution []int64

type SAT struct {
	Variables uint64
	Clauses   [][]int64
	Names     map[int64]string // Optional variable names, written as comments in DIMACS
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder

	// Names are emitted in variable order so that dumps are reproducible
	variables := lo.Keys(s.Names)
	slices.Sort(variables)
	for _, variable := range variables {
		fmt.Fprintf(&builder, "c %d %s\n", variable, s.Names[variable])
	}

	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// Assignment indexes a solution by variable for constant time lookups
func (solution SATSolution) Assignment(variables uint64) []bool {
	assignment := make([]bool, variables+1)
	for _, value := range solution {
		if value > 0 && uint64(value) <= variables {
			assignment[value] = true
		}
	}
	return assignment
}
