package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignmentOf(adapter *recordingAdapter, trueLiterals ...int64) Assignment {
	assignment := make(Assignment, adapter.variables+1)
	for _, literal := range trueLiterals {
		assignment[literal] = true
	}
	return assignment
}

func TestDecode(t *testing.T) {
	t.Run("Intervals follow the chosen starts", func(t *testing.T) {
		// Arrange
		meet := athleticsMeet()
		adapter := newRecordingAdapter()
		matrix, err := NewStartMatrix(meet, adapter)
		require.NoError(t, err)
		adapter.NewBoolVar("auxiliary") // True auxiliaries are ignored
		assignment := assignmentOf(adapter,
			int64(matrix.Var(0, 4)),
			int64(matrix.Var(1, 12)),
			int64(matrix.Var(2, 0)),
			int64(matrix.Var(3, 7)),
			int64(adapter.variables),
		)

		// Act
		schedule, err := Decode(meet, matrix, assignment)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []Interval{
			{EventID: 2, Name: "LongJumpMS", Start: 0, End: 3},
			{EventID: 0, Name: "100m", Start: 4, End: 4},
			{EventID: 3, Name: "LongJumpKS", Start: 7, End: 10},
			{EventID: 1, Name: "200m", Start: 12, End: 13},
		}, schedule.PerEvent)
		assert.Equal(t, []Interval{
			{EventID: 3, Name: "LongJumpKS", Start: 7, End: 10},
			{EventID: 1, Name: "200m", Start: 12, End: 13},
		}, schedule.PerParticipant["Lisa"])
		assert.Len(t, schedule.PerParticipant, len(meet.Participants))
		for _, interval := range schedule.PerEvent {
			event, _ := meet.Event(interval.EventID)
			assert.Equal(t, event.Duration, interval.End-interval.Start+1)
		}
	})

	t.Run("Ties are broken by event id", func(t *testing.T) {
		// Arrange
		meet := Meet{
			Slots: 2,
			Events: []Event{
				{ID: 7, Name: "B", Duration: 1, Area: "North"},
				{ID: 3, Name: "A", Duration: 1, Area: "South"},
			},
		}
		adapter := newRecordingAdapter()
		matrix, err := NewStartMatrix(meet, adapter)
		require.NoError(t, err)

		// Act
		schedule, err := Decode(meet, matrix, assignmentOf(adapter, int64(matrix.Var(7, 1)), int64(matrix.Var(3, 1))))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []int{3, 7}, []int{schedule.PerEvent[0].EventID, schedule.PerEvent[1].EventID})
	})

	t.Run("Event without start", func(t *testing.T) {
		// Arrange
		meet := athleticsMeet()
		adapter := newRecordingAdapter()
		matrix, err := NewStartMatrix(meet, adapter)
		require.NoError(t, err)

		// Act
		_, err = Decode(meet, matrix, assignmentOf(adapter, int64(matrix.Var(0, 0))))

		// Assert
		assert.Error(t, err)
	})

	t.Run("Event with two starts", func(t *testing.T) {
		// Arrange
		meet := Meet{Slots: 3, Events: []Event{{ID: 0, Name: "A", Duration: 1, Area: "North"}}}
		adapter := newRecordingAdapter()
		matrix, err := NewStartMatrix(meet, adapter)
		require.NoError(t, err)

		// Act
		_, err = Decode(meet, matrix, assignmentOf(adapter, int64(matrix.Var(0, 0)), int64(matrix.Var(0, 2))))

		// Assert
		assert.ErrorContains(t, err, "starts at 2 slots")
	})
}

func TestAssignmentValue(t *testing.T) {
	assignment := Assignment{false, true, false}

	assert.True(t, assignment.Value(1))
	assert.False(t, assignment.Value(-1))
	assert.False(t, assignment.Value(2))
	assert.True(t, assignment.Value(-2))
	assert.False(t, assignment.Value(10))
}
