package model

import (
	"context"
	"fmt"
	"testing"

	"github.com/gobuffalo/nulls"
	"github.com/limaJavier/meetscheduling/pkg/sat"
	"github.com/stretchr/testify/require"
)

type linearConstraint struct {
	literals  []sat.Literal
	low, high int
}

// recordingAdapter keeps every posted constraint for inspection and never solves
type recordingAdapter struct {
	variables    uint64
	names        map[sat.Literal]string
	equalities   []linearConstraint
	ranges       []linearConstraint
	implications [][2]sat.Literal
}

func newRecordingAdapter() *recordingAdapter {
	return &recordingAdapter{names: make(map[sat.Literal]string)}
}

func (adapter *recordingAdapter) NewBoolVar(name string) sat.Literal {
	adapter.variables++
	literal := sat.Literal(adapter.variables)
	adapter.names[literal] = name
	return literal
}

func (adapter *recordingAdapter) AddLinearEquality(literals []sat.Literal, target int) {
	adapter.equalities = append(adapter.equalities, linearConstraint{literals: literals, low: target, high: target})
}

func (adapter *recordingAdapter) AddLinearRange(literals []sat.Literal, low, high int) {
	adapter.ranges = append(adapter.ranges, linearConstraint{literals: literals, low: low, high: high})
}

func (adapter *recordingAdapter) AddImplication(antecedent, consequent sat.Literal) {
	adapter.implications = append(adapter.implications, [2]sat.Literal{antecedent, consequent})
}

func (adapter *recordingAdapter) Solve(context.Context) (Status, Assignment, error) {
	return Unknown, nil, fmt.Errorf("recording adapter cannot solve")
}

func (adapter *recordingAdapter) Stats() (uint64, int) {
	return adapter.variables, len(adapter.equalities) + len(adapter.ranges) + len(adapter.implications)
}

// stubSATSolver answers every instance with a fixed outcome
type stubSATSolver struct {
	solution sat.SATSolution
	err      error
}

func (solver *stubSATSolver) Solve(context.Context, sat.SAT) (sat.SATSolution, error) {
	return solver.solution, solver.err
}

func newTestState(t *testing.T, meet Meet, areaMode AreaMode, encoding OverlapEncoding) (constraintState, *recordingAdapter) {
	t.Helper()

	adapter := newRecordingAdapter()
	matrix, err := NewStartMatrix(meet, adapter)
	require.NoError(t, err)

	return constraintState{
		meet:      meet,
		matrix:    matrix,
		adapter:   adapter,
		areaMode:  areaMode,
		encoding:  encoding,
		separated: make(map[[2]int]bool),
	}, adapter
}

// Track and field events with four athletes
func athleticsMeet() Meet {
	return Meet{
		Slots: 14,
		Events: []Event{
			{ID: 0, Name: "100m", Duration: 1, Area: "Track"},
			{ID: 1, Name: "200m", Duration: 2, Area: "Track"},
			{ID: 2, Name: "LongJumpMS", Duration: 4, Area: "Field"},
			{ID: 3, Name: "LongJumpKS", Duration: 4, Area: "Field"},
		},
		Participants: []Participant{
			{Name: "Alice", EventIDs: []int{0, 2}},
			{Name: "Bob", EventIDs: []int{1, 2}},
			{Name: "Charlie", EventIDs: []int{0, 1}},
			{Name: "Lisa", EventIDs: []int{1, 3}},
		},
	}
}

// Two rounds of the same race lasting 3 and 5 slots
func roundsMeet(slots int) Meet {
	return Meet{
		Slots: slots,
		Events: []Event{
			{ID: 0, Name: "Heat", Duration: 3, Area: "Pool", Family: nulls.NewString("400m")},
			{ID: 1, Name: "Final", Duration: 5, Area: "Pool", Family: nulls.NewString("400m")},
		},
	}
}
