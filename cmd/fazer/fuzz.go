package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrjabs/fazer/pkg/fuzzer"
	"github.com/chrjabs/fazer/pkg/reporting"
)

var fuzzCmd = &cobra.Command{
	Use:   "fuzz",
	Args:  cobra.NoArgs,
	Short: "Run the seed fuzz loop against the configured solver roster",
	Long: `Fuzz draws a fresh instance seed from the master random source each
round, streams a structured instance from it, runs every configured
solver, and cross-validates their Pareto fronts. Any classified problem
is recorded and the triggering instance persisted to buggy-<seed>.mcnf.

Examples:
  fazer fuzz --rounds 100
  fazer fuzz --seed 42 --rounds 20 -j 4
  fazer fuzz --rounds 50 --metrics-addr :9090`,
	RunE: runFuzz,
}

func init() {
	fuzzCmd.Flags().IntP("workers", "j", 0, "worker pool size override (0 = use config)")
	fuzzCmd.Flags().Int("rounds", 5, "number of instances to generate and evaluate")
	fuzzCmd.Flags().String("out-dir", ".", "directory for buggy-<seed>.mcnf artifacts")
	fuzzCmd.Flags().String("log", "", "JSONL round-log path (empty = disabled)")
	fuzzCmd.Flags().String("reports-dir", "reports", "directory for saved run-report JSON files")
	fuzzCmd.Flags().String("format", "text", "progress output format (text|json|tui)")
	fuzzCmd.Flags().String("metrics-addr", "", "if set, serve Prometheus metrics on this address")
}

func runFuzz(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	workers, _ := cmd.Flags().GetInt("workers")
	rounds, _ := cmd.Flags().GetInt("rounds")
	outDir, _ := cmd.Flags().GetString("out-dir")
	logPath, _ := cmd.Flags().GetString("log")
	reportsDir, _ := cmd.Flags().GetString("reports-dir")
	format, _ := cmd.Flags().GetString("format")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	if workers <= 0 && cfg.Execution != nil {
		workers = cfg.Execution.NWorkers
	}

	backends, err := buildBackends(cfg)
	if err != nil {
		return fmt.Errorf("building solvers: %w", err)
	}

	logLevel := reporting.LogLevelInfo
	if verbose {
		logLevel = reporting.LogLevelDebug
	}
	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  logLevel,
		Format: reporting.LogFormatText,
		Output: os.Stdout,
	})

	var metrics *reporting.Metrics
	if metricsAddr != "" {
		metrics = reporting.NewMetrics()
		if err := metrics.Serve(metricsAddr); err != nil {
			return fmt.Errorf("starting metrics server: %w", err)
		}
		defer metrics.Shutdown(context.Background())
		logger.Info("metrics server listening", "addr", metricsAddr)
	}

	seed := seedOverride()
	if seed == nil {
		seed = cfg.Instances.Seed
	}

	runner := fuzzer.NewRunner(fuzzer.Config{
		Rounds:   rounds,
		NWorkers: workers,
		Seed:     seed,
		OutDir:   outDir,
		LogPath:  logPath,
	}, &cfg.Instances, backends, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	tested, results, runErr := runner.Run(ctx)
	status := reporting.StatusCompleted
	if runErr == context.Canceled {
		status = reporting.StatusStopped
		runErr = nil
	}
	if runErr != nil {
		return fmt.Errorf("fuzz run: %w", runErr)
	}

	report := &reporting.RunReport{
		RunID:           fmt.Sprintf("fuzz-%d", start.Unix()),
		Seed:            seed,
		StartTime:       start,
		EndTime:         time.Now(),
		Duration:        time.Since(start).String(),
		Status:          status,
		InstancesTested: tested,
		ProblemsFound:   results.NProblems(),
	}
	var solverIDs []string
	for id := range backends {
		solverIDs = append(solverIDs, id)
	}
	sort.Strings(solverIDs)
	for _, id := range solverIDs {
		report.BySolver = append(report.BySolver, reporting.SolverSummary{
			Solver:   id,
			Problems: results.NSolverProblems(id),
		})
	}

	fmt.Print(reporting.FormatProblemTable(tested, results))
	progress := reporting.NewProgressReporter(reporting.OutputFormat(format), logger)
	progress.ReportRunCompleted(report)

	if storage, serr := reporting.NewStorage(reportsDir, 50, logger); serr == nil {
		if _, saveErr := storage.SaveReport(report); saveErr != nil {
			logger.Warn("failed to save run report", "error", saveErr)
		}
	}

	if report.ProblemsFound > 0 {
		return &problemsFoundErr{count: report.ProblemsFound}
	}
	return nil
}
