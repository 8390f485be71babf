package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/limaJavier/meetscheduling/internal/config"
	"github.com/limaJavier/meetscheduling/internal/logging"
	"github.com/limaJavier/meetscheduling/internal/metrics"
	"github.com/limaJavier/meetscheduling/pkg/model"
	"github.com/limaJavier/meetscheduling/pkg/sat"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	resultsFile = "benchmark_results.csv"
	metricsFile = "benchmark_metrics.prom"
	seed        = 42
)

type ResultType int

const (
	solved ResultType = iota
	unsatisfiable
	timeout
	failed
)

var resultTypes = map[ResultType]string{
	solved:        "solved",
	unsatisfiable: "unsatisfiable",
	timeout:       "timeout",
	failed:        "error",
}

type BenchmarkResult struct {
	Solver    string
	Encoding  model.OverlapEncoding
	AreaMode  model.AreaMode
	Shape     MeetShape
	Variables uint64
	Clauses   int
	Duration  time.Duration
	Result    ResultType
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx, "")
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile, Console: os.Stderr})
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer logger.Sync()

	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(metrics.WithRegistry(registry), metrics.WithNamespace("meetbenchmark"))

	shapes := getShapes()
	solvers := getSolvers(cfg, logger)
	encodings := []model.OverlapEncoding{model.EncodingPairwise, model.EncodingWindow}
	areaModes := []model.AreaMode{model.AreaInterval, model.AreaStart}
	results := make([]BenchmarkResult, 0, len(shapes)*len(solvers)*len(encodings)*len(areaModes))

	for _, shape := range shapes {
		meet := GenerateMeet(shape, seed)
		for _, solverName := range solvers {
			for _, encoding := range encodings {
				for _, areaMode := range areaModes {
					fmt.Printf("Benchmarking meet \"%v\" with solver \"%v\", encoding \"%v\" and area mode \"%v\"\n", shape.Name, solverName, encoding, areaMode)

					solver := lo.Must(sat.NewSolver(solverName, cfg.SolverPaths[solverName]))
					scheduler := model.NewScheduler(solver,
						model.WithLogger(logger.With(zap.String("shape", shape.Name), zap.String("solver", solverName))),
						model.WithMetrics(recorder),
						model.WithOverlapEncoding(encoding),
						model.WithAreaMode(areaMode),
						model.WithPairBudget(cfg.PairBudget),
					)

					results = append(results, measure(ctx, scheduler, meet, cfg.Timeout, BenchmarkResult{
						Solver:   solverName,
						Encoding: encoding,
						AreaMode: areaMode,
						Shape:    shape,
					}))
				}
			}
		}
	}

	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()
	if err := toCsv(file, results); err != nil {
		log.Panicf("cannot write CSV file: %v", err)
	}

	if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
		logger.Error("cannot write metrics", zap.Error(err))
	}
}

// getSolvers keeps gini and the external solvers whose executable can be found
func getSolvers(cfg *config.Config, logger *zap.Logger) []string {
	return lo.Filter(sat.SolverNames(), func(name string, _ int) bool {
		if name == "gini" {
			return true
		}
		path := lo.CoalesceOrEmpty(cfg.SolverPaths[name], name)
		if _, err := exec.LookPath(path); err != nil {
			logger.Info("skipping solver", zap.String("solver", name), zap.Error(err))
			return false
		}
		return true
	})
}

func measure(ctx context.Context, scheduler *model.Scheduler, meet model.Meet, limit time.Duration, result BenchmarkResult) BenchmarkResult {
	if limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}

	solveResult, err := scheduler.Solve(ctx, meet)
	result.Variables, result.Clauses, result.Duration = solveResult.Variables, solveResult.Clauses, solveResult.Elapsed
	result.Result = resultOf(solveResult.Status, err)
	return result
}

func resultOf(status model.Status, err error) ResultType {
	switch {
	case err != nil:
		return failed
	case status.Solved():
		return solved
	case status == model.Infeasible:
		return unsatisfiable
	}
	return timeout
}

func toCsv(writer io.Writer, results []BenchmarkResult) error {
	csvWriter := csv.NewWriter(writer)

	header := []string{"Solver", "Encoding", "Area Mode", "Meet", "Slots", "Events", "Areas", "Families", "Participants", "Variables", "Clauses", "Duration(ms)", "Result"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Solver,
			result.Encoding.String(),
			result.AreaMode.String(),
			result.Shape.Name,
			fmt.Sprintf("%d", result.Shape.Slots),
			fmt.Sprintf("%d", result.Shape.Events),
			fmt.Sprintf("%d", result.Shape.Areas),
			fmt.Sprintf("%d", result.Shape.Families),
			fmt.Sprintf("%d", result.Shape.Participants),
			fmt.Sprintf("%d", result.Variables),
			fmt.Sprintf("%d", result.Clauses),
			fmt.Sprintf("%d", result.Duration.Milliseconds()),
			resultTypes[result.Result],
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
