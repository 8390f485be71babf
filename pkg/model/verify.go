package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Verify checks a schedule against the meet independently of how it was produced
func Verify(meet Meet, schedule Schedule, areaMode AreaMode) error {
	if err := meet.Validate(); err != nil {
		return err
	}

	//** One interval per event, with its duration, inside the horizon
	intervals := make(map[int]Interval, len(schedule.PerEvent))
	for _, interval := range schedule.PerEvent {
		event, ok := meet.Event(interval.EventID)
		if !ok {
			return fmt.Errorf("schedule contains unknown event %d", interval.EventID)
		} else if _, ok := intervals[interval.EventID]; ok {
			return fmt.Errorf("event %d is scheduled more than once", interval.EventID)
		}

		if interval.End-interval.Start+1 != event.Duration {
			return fmt.Errorf("event %d occupies [%d, %d] but lasts %d slots", event.ID, interval.Start, interval.End, event.Duration)
		} else if interval.Start < 0 || interval.End >= meet.Slots {
			return fmt.Errorf("event %d occupies [%d, %d] outside the horizon [0, %d)", event.ID, interval.Start, interval.End, meet.Slots)
		}
		intervals[interval.EventID] = interval
	}
	if missing := lo.Filter(meet.Events, func(event Event, _ int) bool {
		_, ok := intervals[event.ID]
		return !ok
	}); len(missing) > 0 {
		return fmt.Errorf("events %v are not scheduled", lo.Map(missing, func(event Event, _ int) int { return event.ID }))
	}

	//** Areas
	for _, group := range meet.AreaGroups() {
		for i := range len(group) - 1 {
			for j := i + 1; j < len(group); j++ {
				interval1, interval2 := intervals[group[i].ID], intervals[group[j].ID]
				switch {
				case areaMode == AreaStart && interval1.Start == interval2.Start:
					return fmt.Errorf("events %d and %d start together at slot %d in area \"%v\"", interval1.EventID, interval2.EventID, interval1.Start, group[i].Area)
				case areaMode == AreaInterval && intervalsOverlap(interval1, interval2):
					return fmt.Errorf("events %d and %d overlap in area \"%v\"", interval1.EventID, interval2.EventID, group[i].Area)
				}
			}
		}
	}

	//** Participants
	for _, participant := range meet.Participants {
		for i := range len(participant.EventIDs) - 1 {
			for j := i + 1; j < len(participant.EventIDs); j++ {
				interval1, interval2 := intervals[participant.EventIDs[i]], intervals[participant.EventIDs[j]]
				if intervalsOverlap(interval1, interval2) {
					return fmt.Errorf("participant \"%v\" attends overlapping events %d and %d", participant.Name, interval1.EventID, interval2.EventID)
				}
			}
		}

		view, ok := schedule.PerParticipant[participant.Name]
		if !ok {
			return fmt.Errorf("participant \"%v\" has no schedule", participant.Name)
		}
		expected := lo.Map(participant.EventIDs, func(id int, _ int) Interval { return intervals[id] })
		sortIntervals(expected)
		if !slices.Equal(view, expected) {
			return fmt.Errorf("schedule of participant \"%v\" does not match the event schedule", participant.Name)
		}
	}

	//** Families
	for _, family := range meet.FamilySequences() {
		for k := range len(family) - 1 {
			current, next := intervals[family[k].ID], intervals[family[k+1].ID]
			if next.Start != current.End+1 {
				return fmt.Errorf("family \"%v\": event %d starts at %d instead of right after event %d ends at %d", family[k].Family.String, next.EventID, next.Start, current.EventID, current.End)
			}
		}
	}

	return nil
}

func intervalsOverlap(interval1, interval2 Interval) bool {
	return interval1.Start <= interval2.End && interval2.Start <= interval1.End
}
