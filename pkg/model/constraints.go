package model

import (
	"fmt"

	"github.com/limaJavier/meetscheduling/pkg/sat"
	"github.com/samber/lo"
)

type constraintState struct {
	meet     Meet
	matrix   *StartMatrix
	adapter  SolverAdapter
	areaMode AreaMode
	encoding OverlapEncoding

	separated map[[2]int]bool // Event pairs whose intervals are already kept apart
}

type constraintGenerator struct {
	name     string
	generate func(state constraintState) int
}

// Run sequentially, in this order, over the same start matrix
var constraintGenerators = []constraintGenerator{
	{name: "exactly-once", generate: exactlyOnceConstraints},
	{name: "horizon", generate: horizonConstraints},
	{name: "area", generate: areaConstraints},
	{name: "participant", generate: participantConstraints},
	{name: "family", generate: familyConstraints},
}

// sum_t x(e, t) = 1
func exactlyOnceConstraints(state constraintState) int {
	for _, event := range state.meet.Events {
		state.adapter.AddLinearEquality(state.matrix.Row(event.ID), 1)
	}
	return len(state.meet.Events)
}

// x(e, t) = 0 for t > Slots - dur(e), so that [t, t+dur(e)-1] stays inside the horizon
func horizonConstraints(state constraintState) int {
	posted := 0
	for _, event := range state.meet.Events {
		row := state.matrix.Row(event.ID)
		if tail := row[state.meet.Slots-event.Duration+1:]; len(tail) > 0 {
			state.adapter.AddLinearEquality(tail, 0)
			posted++
		}
	}
	return posted
}

func areaConstraints(state constraintState) int {
	posted := 0
	for _, group := range state.meet.AreaGroups() {
		if len(group) < 2 {
			continue
		}

		switch state.areaMode {
		case AreaStart:
			// sum_{e in area} x(e, t) <= 1
			for t := range state.meet.Slots {
				starts := lo.Map(group, func(event Event, _ int) sat.Literal { return state.matrix.Var(event.ID, t) })
				state.adapter.AddLinearRange(starts, 0, 1)
				posted++
			}
		default:
			for i := range len(group) - 1 {
				for j := i + 1; j < len(group); j++ {
					posted += separate(state, group[i], group[j])
				}
			}
		}
	}
	return posted
}

func participantConstraints(state constraintState) int {
	posted := 0
	for _, participant := range state.meet.Participants {
		events := state.meet.participantEvents(participant)
		for i := range len(events) - 1 {
			for j := i + 1; j < len(events); j++ {
				posted += separate(state, events[i], events[j])
			}
		}
	}
	return posted
}

// x(e_k, t) -> x(e_k+1, t+dur(e_k)) when both rounds fit, x(e_k, t) = 0 otherwise
func familyConstraints(state constraintState) int {
	posted := 0
	for _, family := range state.meet.FamilySequences() {
		for k := range len(family) - 1 {
			current, next := family[k], family[k+1]
			for t := range state.meet.Slots {
				start := state.matrix.Var(current.ID, t)
				if t+current.Duration+next.Duration <= state.meet.Slots {
					state.adapter.AddImplication(start, state.matrix.Var(next.ID, t+current.Duration))
				} else {
					state.adapter.AddLinearEquality([]sat.Literal{start}, 0)
				}
				posted++
			}
		}
	}
	return posted
}

// separate forbids every pair of starts that makes the active intervals of two distinct events overlap
func separate(state constraintState, event1, event2 Event) int {
	key := [2]int{min(event1.ID, event2.ID), max(event1.ID, event2.ID)}
	if event1.ID == event2.ID || state.separated[key] {
		return 0
	}
	state.separated[key] = true

	posted := 0
	for t1 := 0; t1 <= state.meet.Slots-event1.Duration; t1++ {
		for t2 := 0; t2 <= state.meet.Slots-event2.Duration; t2++ {
			if !overlap(t1, event1.Duration, t2, event2.Duration) {
				continue
			}

			switch state.encoding {
			case EncodingWindow:
				posted += windowSeparation(state, event1, t1, event2, t2)
			default:
				// x(e1, t1) + x(e2, t2) <= 1
				state.adapter.AddLinearRange([]sat.Literal{state.matrix.Var(event1.ID, t1), state.matrix.Var(event2.ID, t2)}, 0, 1)
				posted++
			}
		}
	}
	return posted
}

// windowSeparation picks an order for the candidate pair (t1, t2): the event that goes first may not start
// anywhere inside its own candidate window
func windowSeparation(state constraintState, event1 Event, t1 int, event2 Event, t2 int) int {
	before12 := state.adapter.NewBoolVar(fmt.Sprintf("event_%d_before_event_%d_at_%d_%d", event1.ID, event2.ID, t1, t2))
	before21 := state.adapter.NewBoolVar(fmt.Sprintf("event_%d_before_event_%d_at_%d_%d", event2.ID, event1.ID, t2, t1))

	for _, start := range state.matrix.Window(event1.ID, t1, event1.Duration) {
		state.adapter.AddImplication(before12, start.Not())
	}
	for _, start := range state.matrix.Window(event2.ID, t2, event2.Duration) {
		state.adapter.AddImplication(before21, start.Not())
	}
	state.adapter.AddLinearEquality([]sat.Literal{before12, before21}, 1)

	return 3
}

// [t1, t1+d1-1] and [t2, t2+d2-1] share a slot
func overlap(t1, d1, t2, d2 int) bool {
	return t1+d1 > t2 && t2+d2 > t1
}

// candidatePairs counts the overlapping start pairs the separation generators would enumerate
func candidatePairs(meet Meet, areaMode AreaMode) int {
	pairs := make(map[[2]int]bool)
	count := func(event1, event2 Event) {
		key := [2]int{min(event1.ID, event2.ID), max(event1.ID, event2.ID)}
		if event1.ID != event2.ID {
			pairs[key] = true
		}
	}

	if areaMode == AreaInterval {
		for _, group := range meet.AreaGroups() {
			for i := range len(group) - 1 {
				for j := i + 1; j < len(group); j++ {
					count(group[i], group[j])
				}
			}
		}
	}
	for _, participant := range meet.Participants {
		events := meet.participantEvents(participant)
		for i := range len(events) - 1 {
			for j := i + 1; j < len(events); j++ {
				count(events[i], events[j])
			}
		}
	}

	total := 0
	for key := range pairs {
		event1, _ := meet.Event(key[0])
		event2, _ := meet.Event(key[1])
		for t1 := 0; t1 <= meet.Slots-event1.Duration; t1++ {
			for t2 := 0; t2 <= meet.Slots-event2.Duration; t2++ {
				if overlap(t1, event1.Duration, t2, event2.Duration) {
					total++
				}
			}
		}
	}
	return total
}
