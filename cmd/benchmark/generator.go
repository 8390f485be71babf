package main

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/gobuffalo/nulls"
	"github.com/limaJavier/meetscheduling/pkg/model"
	"github.com/samber/lo"
)

// MeetShape describes a family of synthetic meets
type MeetShape struct {
	Name                 string
	Slots                int
	Events               int
	Areas                int
	Families             int // Families of two rounds, taken from the first events
	Participants         int
	EventsPerParticipant int
	MaxDuration          int
}

// GenerateMeet builds a reproducible random meet of the given shape
func GenerateMeet(shape MeetShape, seed uint64) model.Meet {
	random := rand.New(rand.NewPCG(seed, uint64(shape.Events)))
	maxDuration := max(1, min(shape.MaxDuration, shape.Slots))
	areas := max(1, shape.Areas)

	events := make([]model.Event, 0, shape.Events)
	for id := range shape.Events {
		event := model.Event{
			ID:       id,
			Name:     fmt.Sprintf("Event%d", id),
			Duration: 1 + random.IntN(maxDuration),
			Area:     fmt.Sprintf("Area%d", random.IntN(areas)),
		}
		// Rounds of a family share the venue
		if family, partner := id/2, id^1; family < shape.Families && partner < shape.Events {
			event.Family = nulls.NewString(fmt.Sprintf("Family%d", family))
			if id%2 == 1 {
				event.Area = events[id-1].Area
			}
		}
		events = append(events, event)
	}

	perParticipant := min(shape.EventsPerParticipant, shape.Events)
	participants := lo.Times(shape.Participants, func(index int) model.Participant {
		eventIDs := random.Perm(shape.Events)[:perParticipant]
		slices.Sort(eventIDs)
		return model.Participant{Name: fmt.Sprintf("Participant%d", index), EventIDs: eventIDs}
	})

	return model.Meet{Events: events, Participants: participants, Slots: shape.Slots}
}

func getShapes() []MeetShape {
	return []MeetShape{
		{Name: "small", Slots: 16, Events: 8, Areas: 2, Families: 1, Participants: 10, EventsPerParticipant: 2, MaxDuration: 3},
		{Name: "medium", Slots: 32, Events: 20, Areas: 3, Families: 3, Participants: 40, EventsPerParticipant: 3, MaxDuration: 4},
		{Name: "large", Slots: 48, Events: 40, Areas: 4, Families: 6, Participants: 120, EventsPerParticipant: 3, MaxDuration: 4},
		{Name: "crowded", Slots: 12, Events: 16, Areas: 2, Families: 2, Participants: 30, EventsPerParticipant: 3, MaxDuration: 3},
	}
}
