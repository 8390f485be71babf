package main

import (
	"context"
	"fmt"
	"os"

	"github.com/limaJavier/meetscheduling/pkg/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func solveCmd(app *app) *cobra.Command {
	var (
		out    string
		format string
	)

	c := &cobra.Command{
		Use:   "solve MEET",
		Short: "Find a schedule for a meet description (JSON or YAML)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.solve(cmd.Context(), args[0], out, format)
		},
	}

	c.Flags().StringVarP(&out, "out", "o", "", "Write the result to this file instead of stdout")
	c.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json|text")
	return c
}

func (app *app) solve(ctx context.Context, path, out, format string) error {
	if format != formatJSON && format != formatText {
		return fmt.Errorf("%v is not a valid output format", format)
	}

	meet, err := model.InputFromFile(path)
	if err != nil {
		return err
	}
	clock, err := app.cfg.Clock()
	if err != nil {
		return err
	}
	solver, err := app.cfg.NewSolver()
	if err != nil {
		return err
	}
	options, err := app.cfg.SchedulerOptions()
	if err != nil {
		return err
	}

	stopMetrics := app.serveMetrics()
	defer stopMetrics()

	schedules := make([]model.Schedule, 0)
	options = append(options, model.WithLogger(app.logger), model.WithMetrics(app.recorder()))
	if app.cfg.MaxSolutions > 1 {
		options = append(options, model.WithSolutionListener(func(_ int, schedule model.Schedule) {
			schedules = append(schedules, schedule)
		}, app.cfg.MaxSolutions))
	}

	if app.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.cfg.Timeout)
		defer cancel()
	}

	app.logger.Info("solving meet",
		zap.String("file", path),
		zap.String("solver", app.cfg.Solver),
		zap.Int("events", len(meet.Events)),
		zap.Int("slots", meet.Slots),
	)
	result, err := model.NewScheduler(solver, options...).Solve(ctx, meet)
	if err != nil {
		return err
	}

	if err := app.emit(out, format, newSolveOutput(result, schedules, clock)); err != nil {
		return err
	}

	switch {
	case result.Status.Solved():
		areaMode, _ := model.ParseAreaMode(app.cfg.AreaMode)
		if err := model.Verify(meet, *result.Schedule, areaMode); err != nil {
			app.logger.Error("schedule failed verification", zap.Error(err))
			return exitCode(exitUnverified)
		}
		return exitCode(exitSatisfiable)
	case result.Status == model.Infeasible:
		return exitCode(exitUnsatisfiable)
	}
	return exitCode(exitUnknown)
}

func (app *app) emit(out, format string, output solveOutput) error {
	if out == "" {
		return writeOutput(app.stdout, format, output)
	}

	file, err := os.Create(out)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeOutput(file, format, output)
}
