package reporting

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/chrjabs/fazer/pkg/aggregator"
)

// FormatProblemTable renders a fuzz/evaluate run's findings as a
// fixed-width text report, in the manual-buffer-and-header style of the
// chaos runner's text report formatter.
func FormatProblemTable(tested int, results *aggregator.Results) string {
	var buf bytes.Buffer

	buf.WriteString("================================================================================\n")
	buf.WriteString("FUZZ SUMMARY\n")
	buf.WriteString("================================================================================\n")
	fmt.Fprintf(&buf, "instances tested: %d\n", tested)
	fmt.Fprintf(&buf, "problems found:   %d\n", results.NProblems())
	buf.WriteString("\n")

	buf.WriteString("BY SOLVER\n")
	buf.WriteString("--------------------------------------------------------------------------------\n")
	type solverRow struct {
		solver string
		probs  []aggregator.InstanceProblem
	}
	var solverRows []solverRow
	results.SolverProblems(func(solver string, problems []aggregator.InstanceProblem) {
		solverRows = append(solverRows, solverRow{solver: solver, probs: problems})
	})
	sort.Slice(solverRows, func(i, j int) bool { return solverRows[i].solver < solverRows[j].solver })
	for _, row := range solverRows {
		fmt.Fprintf(&buf, "%-24s %d problem(s)\n", row.solver, len(row.probs))
		for _, p := range row.probs {
			fmt.Fprintf(&buf, "  seed=%-20d %s\n", p.Seed, p.Problem.String())
		}
	}
	if len(solverRows) == 0 {
		buf.WriteString("  (none)\n")
	}
	buf.WriteString("================================================================================\n")

	return buf.String()
}
