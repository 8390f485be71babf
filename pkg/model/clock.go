package model

import (
	"fmt"
	"time"
)

// Clock maps slots onto wall-clock time
type Clock struct {
	MeetStart    time.Time
	SlotDuration time.Duration
}

func NewClock(meetStart time.Time, slotDuration time.Duration) (Clock, error) {
	if slotDuration <= 0 {
		return Clock{}, newConfigurationError("slot duration must be positive: %v", slotDuration)
	}
	return Clock{MeetStart: meetStart, SlotDuration: slotDuration}, nil
}

func (clock Clock) Start(slot int) time.Time {
	return clock.MeetStart.Add(time.Duration(slot) * clock.SlotDuration)
}

// End is the instant the slot is over
func (clock Clock) End(slot int) time.Time {
	return clock.Start(slot + 1)
}

func (clock Clock) Format(interval Interval) string {
	return fmt.Sprintf("%v-%v", clock.Start(interval.Start).Format("15:04"), clock.End(interval.End).Format("15:04"))
}
