package model

import (
	"log"
	"slices"

	"github.com/gobuffalo/nulls"
	"github.com/samber/lo"
)

type Event struct {
	ID       int
	Name     string
	Duration int          // Whole slots, at least one
	Area     string       // Events sharing an area compete for it
	Family   nulls.String // Events sharing a family are rounds that run back-to-back in id order
}

type Participant struct {
	Name     string
	EventIDs []int
}

// Meet is the immutable description of a scheduling problem over the slots [0, Slots)
type Meet struct {
	Events       []Event
	Participants []Participant
	Slots        int
}

func (meet Meet) Event(id int) (Event, bool) {
	return lo.Find(meet.Events, func(event Event) bool { return event.ID == id })
}

// Validate detects every configuration that makes constraint generation meaningless
func (meet Meet) Validate() error {
	if meet.Slots <= 0 {
		return newConfigurationError("number of slots must be positive: %d", meet.Slots)
	}

	ids := make(map[int]bool, len(meet.Events))
	for _, event := range meet.Events {
		switch {
		case ids[event.ID]:
			return newConfigurationError("duplicate event id %d", event.ID)
		case event.Duration < 1:
			return newConfigurationError("event %d (%v) must last at least one slot: %d", event.ID, event.Name, event.Duration)
		case event.Duration > meet.Slots:
			return newConfigurationError("event %d (%v) lasts %d slots but the horizon only has %d", event.ID, event.Name, event.Duration, meet.Slots)
		case event.Area == "":
			return newConfigurationError("event %d (%v) has no area", event.ID, event.Name)
		}
		ids[event.ID] = true
	}

	names := make(map[string]bool, len(meet.Participants))
	for _, participant := range meet.Participants {
		if names[participant.Name] {
			return newConfigurationError("duplicate participant \"%v\"", participant.Name)
		}
		names[participant.Name] = true

		signups := make(map[int]bool, len(participant.EventIDs))
		for _, id := range participant.EventIDs {
			if !ids[id] {
				return newConfigurationError("participant \"%v\" is signed up for unknown event %d", participant.Name, id)
			} else if signups[id] {
				return newConfigurationError("participant \"%v\" is signed up twice for event %d", participant.Name, id)
			}
			signups[id] = true
		}
	}

	return nil
}

// AreaGroups returns the events grouped by area, ordered by area name and then by id
func (meet Meet) AreaGroups() [][]Event {
	return sortedGroups(lo.GroupBy(meet.Events, func(event Event) string { return event.Area }))
}

// FamilySequences returns the families ordered by name, each one ordered by id (round 1, round 2, ...). Events without family are excluded
func (meet Meet) FamilySequences() [][]Event {
	members := lo.Filter(meet.Events, func(event Event, _ int) bool { return event.Family.Valid })
	return sortedGroups(lo.GroupBy(members, func(event Event) string { return event.Family.String }))
}

func (meet Meet) participantEvents(participant Participant) []Event {
	return lo.Map(participant.EventIDs, func(id int, _ int) Event {
		event, ok := meet.Event(id)
		if !ok {
			log.Panicf("participant %v references unknown event %d on a validated meet", participant.Name, id)
		}
		return event
	})
}

func sortedGroups(groups map[string][]Event) [][]Event {
	keys := lo.Keys(groups)
	slices.Sort(keys)

	return lo.Map(keys, func(key string, _ int) []Event {
		group := slices.Clone(groups[key])
		slices.SortFunc(group, func(a, b Event) int { return a.ID - b.ID })
		return group
	})
}
