package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrjabs/fazer/pkg/instance"
	"github.com/chrjabs/fazer/pkg/mcnf"
	"github.com/chrjabs/fazer/pkg/minimizer"
)

var minimizeCmd = &cobra.Command{
	Use:     "minimize <instance-file>",
	Aliases: []string{"min"},
	Args:    cobra.ExactArgs(1),
	Short:   "Reserved delta-debug reducer for a failing instance (unimplemented)",
	Long: `Minimize would apply the configured reduction modes (min_clauses,
min_lits, min_vars, soft_to_hard, weight_to_one, weight_binary_search)
to an instance that previously reproduced a problem, shrinking it while
a reproduction check still reports that problem. The reduction passes
are reserved but not yet built (see pkg/minimizer).`,
	RunE: runMinimize,
}

func runMinimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	inst, err := mcnf.ReadPath(args[0], 0)
	if err != nil {
		return fmt.Errorf("reading instance: %w", err)
	}

	var modes []minimizer.Mode
	if cfg.Minimization != nil {
		for _, m := range cfg.Minimization.Modes {
			modes = append(modes, minimizer.Mode(m))
		}
	}

	_, err = minimizer.Minimize(inst, modes, func(*instance.Instance) bool { return false })
	if err != nil {
		fmt.Println("minimize: not yet implemented")
		return nil
	}
	return nil
}
