package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/limaJavier/meetscheduling/pkg/model"
	"github.com/samber/lo"
)

const (
	formatJSON = "json"
	formatText = "text"
)

type intervalOutput struct {
	model.Interval
	From string `json:"from"`
	To   string `json:"to"`
}

type scheduleOutput struct {
	PerEvent       []intervalOutput            `json:"per_event"`
	PerParticipant map[string][]intervalOutput `json:"per_participant"`
}

type solveOutput struct {
	RunID        string           `json:"run_id"`
	Status       model.Status     `json:"status"`
	Variables    uint64           `json:"variables"`
	Clauses      int              `json:"clauses"`
	Elapsed      string           `json:"elapsed"`
	Schedule     *scheduleOutput  `json:"schedule,omitempty"`
	Alternatives []scheduleOutput `json:"alternatives,omitempty"`
}

func newScheduleOutput(schedule model.Schedule, clock model.Clock) scheduleOutput {
	convert := func(intervals []model.Interval) []intervalOutput {
		return lo.Map(intervals, func(interval model.Interval, _ int) intervalOutput {
			return intervalOutput{
				Interval: interval,
				From:     clock.Start(interval.Start).Format("15:04"),
				To:       clock.End(interval.End).Format("15:04"),
			}
		})
	}

	return scheduleOutput{
		PerEvent:       convert(schedule.PerEvent),
		PerParticipant: lo.MapValues(schedule.PerParticipant, func(intervals []model.Interval, _ string) []intervalOutput { return convert(intervals) }),
	}
}

func newSolveOutput(result model.SolveResult, alternatives []model.Schedule, clock model.Clock) solveOutput {
	output := solveOutput{
		RunID:     result.RunID.String(),
		Status:    result.Status,
		Variables: result.Variables,
		Clauses:   result.Clauses,
		Elapsed:   result.Elapsed.String(),
	}
	if result.Schedule != nil {
		schedule := newScheduleOutput(*result.Schedule, clock)
		output.Schedule = &schedule
	}
	// The first enumerated schedule is the reported one
	if len(alternatives) > 1 {
		output.Alternatives = lo.Map(alternatives[1:], func(schedule model.Schedule, _ int) scheduleOutput {
			return newScheduleOutput(schedule, clock)
		})
	}
	return output
}

func writeOutput(writer io.Writer, format string, output solveOutput) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	case formatText:
		return writeText(writer, output)
	}
	return fmt.Errorf("%v is not a valid output format", format)
}

func writeText(writer io.Writer, output solveOutput) error {
	fmt.Fprintf(writer, "status: %v (%d variables, %d clauses, %v)\n", output.Status, output.Variables, output.Clauses, output.Elapsed)
	if output.Schedule == nil {
		return nil
	}

	table := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "\nFROM\tTO\tEVENT")
	for _, interval := range output.Schedule.PerEvent {
		fmt.Fprintf(table, "%v\t%v\t%v\n", interval.From, interval.To, interval.Name)
	}

	participants := lo.Keys(output.Schedule.PerParticipant)
	slices.Sort(participants)
	for _, participant := range participants {
		fmt.Fprintf(table, "\n%v\t\t\n", participant)
		for _, interval := range output.Schedule.PerParticipant[participant] {
			fmt.Fprintf(table, "%v\t%v\t%v\n", interval.From, interval.To, interval.Name)
		}
	}
	return table.Flush()
}
