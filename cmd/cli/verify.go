package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/limaJavier/meetscheduling/pkg/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func verifyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify MEET RESULT",
		Short: "Check a schedule written by solve against its meet",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.verify(args[0], args[1])
		},
	}
}

func (app *app) verify(meetPath, resultPath string) error {
	meet, err := model.InputFromFile(meetPath)
	if err != nil {
		return err
	}

	bytes, err := os.ReadFile(resultPath)
	if err != nil {
		return err
	}
	var result struct {
		Schedule *model.Schedule `json:"schedule"`
	}
	if err := json.Unmarshal(bytes, &result); err != nil {
		return fmt.Errorf("cannot read result %v: %w", resultPath, err)
	}
	if result.Schedule == nil {
		return fmt.Errorf("result %v holds no schedule", resultPath)
	}

	areaMode, err := model.ParseAreaMode(app.cfg.AreaMode)
	if err != nil {
		return err
	}
	if err := model.Verify(meet, *result.Schedule, areaMode); err != nil {
		fmt.Fprintf(app.stdout, "invalid: %v\n", err)
		return exitCode(exitUnverified)
	}

	app.logger.Debug("schedule verified", zap.String("meet", meetPath), zap.String("result", resultPath))
	fmt.Fprintln(app.stdout, "valid")
	return exitCode(exitSatisfiable)
}
