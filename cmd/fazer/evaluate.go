package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrjabs/fazer/pkg/aggregator"
	"github.com/chrjabs/fazer/pkg/mcnf"
	"github.com/chrjabs/fazer/pkg/oracle"
	"github.com/chrjabs/fazer/pkg/reporting"
)

var evaluateCmd = &cobra.Command{
	Use:     "evaluate <instance-file>",
	Aliases: []string{"eval"},
	Args:    cobra.ExactArgs(1),
	Short:   "Run the Pareto oracle against a given instance file",
	Long: `Evaluate loads an instance file (.mcnf/.bicnf/.wcnf/.cnf/.dimacs/.opb,
optionally .gz/.bz2/.xz compressed), runs every configured solver against
it once, and prints a table of classified problems.`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().Int("first-var-idx", 0, "variable index offset for OPB input")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	firstVarIdx, _ := cmd.Flags().GetInt("first-var-idx")
	inst, err := mcnf.ReadPath(args[0], firstVarIdx)
	if err != nil {
		return fmt.Errorf("reading instance: %w", err)
	}

	backends, err := buildBackends(cfg)
	if err != nil {
		return fmt.Errorf("building solvers: %w", err)
	}

	nWorkers := 1
	if cfg.Execution != nil {
		nWorkers = cfg.Execution.NWorkers
	}
	sched := oracle.NewScheduler(nWorkers)

	findings := oracle.Compare(inst, backends, sched)

	results := aggregator.New()
	results.Record(0, findings)
	fmt.Print(reporting.FormatProblemTable(1, results))

	if len(findings) > 0 {
		return &problemsFoundErr{count: len(findings)}
	}
	return nil
}
