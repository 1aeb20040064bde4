package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Storage archives one JSON document per fuzz run. A long fuzzing
// campaign saves a report per invocation, so the archive is pruned
// oldest-first to the configured size on every save; buggy-<seed>.mcnf
// artifacts are separate and never pruned (they are the reproducers).
type Storage struct {
	dir    string
	keep   int
	logger *Logger
}

// ReportSummary is one archived run as listed by ListReports.
type ReportSummary struct {
	RunID     string    `json:"run_id"`
	StartTime time.Time `json:"start_time"`
	Duration  string    `json:"duration"`
	Status    RunStatus `json:"status"`
	Problems  int       `json:"problems"`
	Filepath  string    `json:"filepath"`
}

// NewStorage opens (creating if needed) the report archive at dir,
// keeping at most keepLastN reports; keepLastN <= 0 disables pruning.
func NewStorage(dir string, keepLastN int, logger *Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory %s: %w", dir, err)
	}
	return &Storage{dir: dir, keep: keepLastN, logger: logger}, nil
}

// SaveReport writes report to the archive and prunes it, returning the
// written path.
func (s *Storage) SaveReport(report *RunReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding run report %s: %w", report.RunID, err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s-%d.json", report.RunID, report.StartTime.UnixNano()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing run report: %w", err)
	}
	s.logger.Info("run report saved", "path", path)

	s.prune()
	return path, nil
}

// LoadReport reads one archived report back.
func (s *Storage) LoadReport(path string) (*RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run report %s: %w", path, err)
	}
	var report RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decoding run report %s: %w", path, err)
	}
	return &report, nil
}

// ListReports summarizes every archived run, newest first. Files that no
// longer decode are skipped, not fatal: a half-written report from a
// killed run must not wedge the archive.
func (s *Storage) ListReports() ([]ReportSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading report directory %s: %w", s.dir, err)
	}

	summaries := make([]ReportSummary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		report, err := s.LoadReport(path)
		if err != nil {
			s.logger.Warn("skipping unreadable run report", "path", path, "error", err)
			continue
		}
		summaries = append(summaries, ReportSummary{
			RunID:     report.RunID,
			StartTime: report.StartTime,
			Duration:  report.Duration,
			Status:    report.Status,
			Problems:  report.ProblemsFound,
			Filepath:  path,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].StartTime.After(summaries[j].StartTime)
	})
	return summaries, nil
}

// FindReportByRunID returns the newest archived report with the given run
// id.
func (s *Storage) FindReportByRunID(runID string) (*RunReport, error) {
	summaries, err := s.ListReports()
	if err != nil {
		return nil, err
	}
	for _, summary := range summaries {
		if summary.RunID == runID {
			return s.LoadReport(summary.Filepath)
		}
	}
	return nil, fmt.Errorf("no archived report for run %s", runID)
}

// prune drops the oldest reports beyond the keep limit. Pruning failures
// are logged, never propagated: losing an old summary must not fail the
// run that just completed.
func (s *Storage) prune() {
	if s.keep <= 0 {
		return
	}
	summaries, err := s.ListReports()
	if err != nil || len(summaries) <= s.keep {
		return
	}
	for _, old := range summaries[s.keep:] {
		if err := os.Remove(old.Filepath); err != nil {
			s.logger.Warn("pruning old run report", "path", old.Filepath, "error", err)
		}
	}
}
