// Command fazer is the differential fuzzer's command-line front end: a
// thin cobra wrapper over pkg/generator, pkg/oracle, and pkg/fuzzer,
// laid out one file per subcommand. The CLI layer stays a thin
// coordinator; generation, cross-validation, and reporting all live in
// their own packages.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	seedFlag  int64
	colorMode string
	verbose   bool
	version   = "dev"
)

// problemsFoundErr is a sentinel returned by fuzz/evaluate's RunE when the
// run completed cleanly but classified at least one problem, distinct
// from a genuine command failure. It maps to exit code 1, same as any
// other error, while leaving the stderr diagnostic silent since the
// report itself already describes the problem.
type problemsFoundErr struct{ count int }

func (e *problemsFoundErr) Error() string {
	return fmt.Sprintf("%d problem(s) found", e.count)
}

var rootCmd = &cobra.Command{
	Use:           "fazer",
	Short:         "Differential fuzzer for multi-objective MaxSAT solvers",
	Long:          `fazer generates structured multi-objective weighted-CNF instances and cross-validates the Pareto fronts returned by a configured set of solvers, flagging disagreements as classified problems.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 0, "random seed (0 = auto)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "color mode (auto|always|never)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(fuzzCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(minimizeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var pf *problemsFoundErr
		if !errors.As(err, &pf) {
			printError(err)
		}
		os.Exit(1)
	}
}

// printError prints err to stderr with a red "error: " prefix.
func printError(err error) {
	if useColor() {
		fmt.Fprintf(os.Stderr, "\x1b[31merror:\x1b[0m %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
