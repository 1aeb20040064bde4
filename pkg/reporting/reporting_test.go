package reporting_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chrjabs/fazer/pkg/aggregator"
	"github.com/chrjabs/fazer/pkg/oracle"
	"github.com/chrjabs/fazer/pkg/reporting"
)

func testLogger() *reporting.Logger {
	return reporting.NewLogger(reporting.LoggerConfig{
		Level:  reporting.LogLevelError,
		Format: reporting.LogFormatText,
		Output: os.Stdout,
	})
}

func TestStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	storage, err := reporting.NewStorage(dir, 10, testLogger())
	require.NoError(t, err)

	report := &reporting.RunReport{
		RunID:           "run-1",
		StartTime:       time.Now().Add(-time.Minute),
		EndTime:         time.Now(),
		Duration:        "1m0s",
		Status:          reporting.StatusCompleted,
		InstancesTested: 5,
		ProblemsFound:   2,
		BySolver: []reporting.SolverSummary{
			{Solver: "candidate", Problems: 2},
		},
	}

	path, err := storage.SaveReport(report)
	require.NoError(t, err)
	require.FileExists(t, path)

	loaded, err := storage.LoadReport(path)
	require.NoError(t, err)
	require.Equal(t, report.RunID, loaded.RunID)
	require.Equal(t, report.ProblemsFound, loaded.ProblemsFound)

	summaries, err := storage.ListReports()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, "run-1", summaries[0].RunID)

	found, err := storage.FindReportByRunID("run-1")
	require.NoError(t, err)
	require.Equal(t, loaded.RunID, found.RunID)
}

func TestStorageKeepLastN(t *testing.T) {
	dir := t.TempDir()
	storage, err := reporting.NewStorage(dir, 1, testLogger())
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		report := &reporting.RunReport{
			RunID:     "run",
			StartTime: base.Add(time.Duration(i) * time.Minute),
		}
		_, err := storage.SaveReport(report)
		require.NoError(t, err)
	}

	summaries, err := storage.ListReports()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
}

func TestFormatProblemTable(t *testing.T) {
	results := aggregator.New()
	results.Record(42, []oracle.Finding{
		{SolverID: "candidate", Problem: oracle.Problem{Kind: oracle.Short, NdomIdx: -1, SolIdx: -1}},
	})

	text := reporting.FormatProblemTable(3, results)
	require.Contains(t, text, "FUZZ SUMMARY")
	require.Contains(t, text, "instances tested: 3")
	require.Contains(t, text, "candidate")
}

func TestMetricsObserveRound(t *testing.T) {
	m := reporting.NewMetrics()
	m.ObserveRound(0)
	m.ObserveRound(2)
	// ObserveRound must not panic and must accept repeated calls; the
	// counters themselves are only observable through /metrics, exercised
	// by cmd/fazer at runtime.
}
