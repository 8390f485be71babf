package main

import (
	"fmt"
	"io"
	"os"

	"github.com/limaJavier/meetscheduling/pkg/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func compileCmd(app *app) *cobra.Command {
	var out string

	c := &cobra.Command{
		Use:   "compile MEET",
		Short: "Print the CNF instance of a meet in DIMACS format",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.compile(args[0], out)
		},
	}

	c.Flags().StringVarP(&out, "out", "o", "", "Write the instance to this file instead of stdout")
	return c
}

func (app *app) compile(path, out string) error {
	meet, err := model.InputFromFile(path)
	if err != nil {
		return err
	}
	options, err := app.cfg.SchedulerOptions()
	if err != nil {
		return err
	}

	instance, err := model.NewScheduler(nil, append(options, model.WithLogger(app.logger))...).Compile(meet)
	if err != nil {
		return err
	}
	app.logger.Info("meet compiled", zap.Uint64("variables", instance.Variables), zap.Int("clauses", len(instance.Clauses)))

	var writer io.Writer = app.stdout
	if out != "" {
		file, err := os.Create(out)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	_, err = fmt.Fprint(writer, instance.ToDIMACS())
	return err
}
