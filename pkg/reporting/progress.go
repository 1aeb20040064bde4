package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// OutputFormat selects how fuzz-run results are rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatTUI  OutputFormat = "tui"
)

// ProgressReporter renders the end-of-run verdict in the format chosen by
// `fuzz --format`. Per-round diagnostics go through the Logger and the
// JSONL round log; classified findings go through the problem table
// (formatter.go); this type only owns the final summary block.
type ProgressReporter struct {
	format OutputFormat
	out    io.Writer
	logger *Logger
}

// NewProgressReporter builds a reporter writing to standard output.
func NewProgressReporter(format OutputFormat, logger *Logger) *ProgressReporter {
	return &ProgressReporter{format: format, out: os.Stdout, logger: logger}
}

// ReportRunCompleted renders report once the fuzz loop has finished.
func (pr *ProgressReporter) ReportRunCompleted(report *RunReport) {
	switch pr.format {
	case FormatJSON:
		data, err := json.Marshal(report)
		if err != nil {
			pr.logger.Error("encoding run report", "error", err)
			return
		}
		fmt.Fprintln(pr.out, string(data))
	case FormatTUI:
		pr.writeBox(report)
	default:
		pr.writeText(report)
	}
}

func verdict(report *RunReport) string {
	switch {
	case report.Status == StatusStopped:
		return "STOPPED"
	case report.ProblemsFound > 0:
		return "PROBLEMS FOUND"
	default:
		return "CLEAN"
	}
}

func (pr *ProgressReporter) writeText(report *RunReport) {
	fmt.Fprintf(pr.out, "\n[%s] %s: %d instance(s), %d problem(s), %s\n",
		verdict(report), report.RunID, report.InstancesTested, report.ProblemsFound, report.Duration)
	for _, s := range report.BySolver {
		fmt.Fprintf(pr.out, "  %-24s %d\n", s.Solver, s.Problems)
	}
	pr.writeReproHint(report)
}

func (pr *ProgressReporter) writeBox(report *RunReport) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintln(pr.out, rule)
	fmt.Fprintf(pr.out, "  fazer %s: %s\n", report.RunID, verdict(report))
	fmt.Fprintln(pr.out, rule)
	fmt.Fprintf(pr.out, "  instances tested  %d\n", report.InstancesTested)
	fmt.Fprintf(pr.out, "  problems found    %d\n", report.ProblemsFound)
	fmt.Fprintf(pr.out, "  duration          %s\n", report.Duration)
	for _, s := range report.BySolver {
		fmt.Fprintf(pr.out, "    %-24s %d\n", s.Solver, s.Problems)
	}
	pr.writeReproHint(report)
	fmt.Fprintln(pr.out, rule)
}

// writeReproHint names the command line that replays a failing run. Only
// seeded runs replay: an entropy-seeded master RNG draws different
// instance seeds next time.
func (pr *ProgressReporter) writeReproHint(report *RunReport) {
	if report.Seed == nil || report.ProblemsFound == 0 {
		return
	}
	fmt.Fprintf(pr.out, "  reproduce: fazer fuzz --seed %d --rounds %d\n",
		*report.Seed, report.InstancesTested)
}
