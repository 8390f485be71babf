package model

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/limaJavier/meetscheduling/pkg/sat"
	"github.com/samber/lo"
)

// Interval is the occupied range [Start, End] of an event, both ends inclusive
type Interval struct {
	EventID int    `json:"event_id"`
	Name    string `json:"name"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

type Schedule struct {
	PerEvent       []Interval            `json:"per_event"`
	PerParticipant map[string][]Interval `json:"per_participant"`
}

// Decode rebuilds the schedule out of the start variables that are true in the assignment
func Decode(meet Meet, matrix *StartMatrix, assignment Assignment) (Schedule, error) {
	starts := make(map[int][]int)
	for variable, value := range assignment {
		// Acknowledge only true start variables, auxiliaries are not in the matrix
		if !value {
			continue
		}
		if event, slot, ok := matrix.Lookup(sat.Literal(variable)); ok {
			starts[event] = append(starts[event], slot)
		}
	}

	perEvent := make([]Interval, 0, len(meet.Events))
	for _, event := range meet.Events {
		slots := starts[event.ID]
		if len(slots) != 1 {
			return Schedule{}, fmt.Errorf("event %d (%v) starts at %d slots instead of one: %v", event.ID, event.Name, len(slots), slots)
		}
		perEvent = append(perEvent, Interval{
			EventID: event.ID,
			Name:    event.Name,
			Start:   slots[0],
			End:     slots[0] + event.Duration - 1,
		})
	}
	sortIntervals(perEvent)

	byEvent := lo.KeyBy(perEvent, func(interval Interval) int { return interval.EventID })
	perParticipant := make(map[string][]Interval, len(meet.Participants))
	for _, participant := range meet.Participants {
		intervals := lo.Map(participant.EventIDs, func(id int, _ int) Interval { return byEvent[id] })
		sortIntervals(intervals)
		perParticipant[participant.Name] = intervals
	}

	return Schedule{
		PerEvent:       perEvent,
		PerParticipant: perParticipant,
	}, nil
}

// Ordered by start, then by event id
func sortIntervals(intervals []Interval) {
	slices.SortFunc(intervals, func(a, b Interval) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.EventID, b.EventID))
	})
}
