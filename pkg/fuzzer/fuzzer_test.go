package fuzzer_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chrjabs/fazer/pkg/config"
	"github.com/chrjabs/fazer/pkg/fuzzer"
	"github.com/chrjabs/fazer/pkg/instance"
	"github.com/chrjabs/fazer/pkg/solver"
)

// panicBackend aborts on every run: the oracle classifies it as a Panic
// problem on every instance, so any round pairing it with a working
// backend is guaranteed to produce a finding.
type panicBackend struct{}

func (panicBackend) Run(*instance.Instance) (solver.ParetoFront, error) {
	panic("broken backend")
}

// tinyInstanceConfig keeps generated instances small enough for
// solver.StubBackend's brute-force enumeration to stay fast: at most two
// layers of width 2-3 (3-4 variables each) and no gadgets.
func tinyInstanceConfig() *config.InstanceConfig {
	return &config.InstanceConfig{
		Objectives:   config.U8Range{Min: 1, Max: 2},
		Layers:       config.U8Range{Min: 1, Max: 2},
		LayerWidth:   config.U8RandomMaxRange{Min: 2, Max: config.U8Range{Min: 2, Max: 3}},
		LayerClauses: config.U8DivRange{Min: 50, Max: 100, Div: 100},
		Equalities:   config.U8ProbRange{ZeroProb: 1, Min: 0, Max: 0},
		Ands:         config.U8ProbRange{ZeroProb: 1, Min: 0, Max: 0},
		Xors3:        config.U8ProbRange{ZeroProb: 1, Min: 0, Max: 0},
		Xors4:        config.U8ProbRange{ZeroProb: 1, Min: 0, Max: 0},
		MaxWeight:    []config.U64Range{{Min: 1, Max: 20}},
	}
}

func stubBackends(ids ...string) map[string]solver.Backend {
	backends := make(map[string]solver.Backend, len(ids))
	for _, id := range ids {
		backends[id] = &solver.StubBackend{}
	}
	return backends
}

func TestRunnerCompletesConfiguredRounds(t *testing.T) {
	seed := uint64(123)
	outDir := t.TempDir()
	logPath := filepath.Join(t.TempDir(), "rounds.jsonl")

	runner := fuzzer.NewRunner(fuzzer.Config{
		Rounds:  3,
		Seed:    &seed,
		OutDir:  outDir,
		LogPath: logPath,
	}, tinyInstanceConfig(), stubBackends("reference", "candidate"), nil, nil)

	tested, results, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if tested != 3 {
		t.Fatalf("tested = %d, want 3", tested)
	}
	if results.NProblems() != 0 {
		t.Fatalf("identical stub backends should never disagree, got %d problems", results.NProblems())
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading round log: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("round log is empty despite LogPath being set")
	}
}

func TestRunnerStopsOnCanceledContext(t *testing.T) {
	seed := uint64(7)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := fuzzer.NewRunner(fuzzer.Config{
		Rounds: 5,
		Seed:   &seed,
		OutDir: t.TempDir(),
	}, tinyInstanceConfig(), stubBackends("reference"), nil, nil)

	tested, _, err := runner.Run(ctx)
	if err == nil {
		t.Fatal("Run should report an error for an already-canceled context")
	}
	if tested != 0 {
		t.Fatalf("tested = %d, want 0 rounds run before the cancellation was observed", tested)
	}
}

func TestRunnerWritesNoArtifactsWhenClean(t *testing.T) {
	seed := uint64(55)
	outDir := t.TempDir()

	runner := fuzzer.NewRunner(fuzzer.Config{
		Rounds: 3,
		Seed:   &seed,
		OutDir: outDir,
	}, tinyInstanceConfig(), stubBackends("reference", "candidate"), nil, nil)

	if _, _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("OutDir has %d entries, want 0 for a run with no disagreements", len(entries))
	}
}

func TestRunnerWritesRoundSnapshotOnDisagreement(t *testing.T) {
	seed := uint64(99)
	outDir := t.TempDir()

	backends := map[string]solver.Backend{
		"reference": &solver.StubBackend{},
		"candidate": panicBackend{},
	}

	runner := fuzzer.NewRunner(fuzzer.Config{
		Rounds: 1,
		Seed:   &seed,
		OutDir: outDir,
	}, tinyInstanceConfig(), backends, nil, nil)

	_, results, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results.NProblems() == 0 {
		t.Fatal("expected candidate's panic to be recorded as a problem")
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var sawMcnf, sawYaml bool
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".mcnf"):
			sawMcnf = true
		case strings.HasSuffix(e.Name(), ".yaml"):
			sawYaml = true
			data, err := os.ReadFile(filepath.Join(outDir, e.Name()))
			if err != nil {
				t.Fatalf("reading snapshot %s: %v", e.Name(), err)
			}
			if !strings.Contains(string(data), "candidate") {
				t.Fatalf("snapshot %s missing candidate solver id:\n%s", e.Name(), data)
			}
		}
	}
	if !sawMcnf {
		t.Fatal("expected a buggy-*.mcnf artifact")
	}
	if !sawYaml {
		t.Fatal("expected a buggy-*.yaml round snapshot")
	}
}
