// Package fuzzer is the seed loop: draw an instance seed, generate,
// evaluate, record, and persist failing instances. Modeled directly on
// the chaos runner's fuzz.Runner.Run loop, generalized from chaos-fault
// rounds to MaxSAT instances.
package fuzzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chrjabs/fazer/pkg/aggregator"
	"github.com/chrjabs/fazer/pkg/config"
	"github.com/chrjabs/fazer/pkg/generator"
	"github.com/chrjabs/fazer/pkg/mcnf"
	"github.com/chrjabs/fazer/pkg/oracle"
	"github.com/chrjabs/fazer/pkg/random"
	"github.com/chrjabs/fazer/pkg/reporting"
	"github.com/chrjabs/fazer/pkg/solver"
)

// Config controls one fuzz run.
type Config struct {
	// Rounds is the number of instances to generate and evaluate. The
	// upstream fuzzer hard-codes this to 5; here it is a knob (DESIGN.md
	// Open Question 2).
	Rounds int
	// NWorkers sizes the oracle's worker pool; <=1 runs sequentially.
	NWorkers int
	// Seed, if non-nil, seeds the master RNG that draws instance seeds.
	Seed *uint64
	// OutDir is where buggy-<seed>.mcnf artifacts are written.
	OutDir string
	// LogPath, if non-empty, appends one JSON line per round.
	LogPath string
}

// Runner drives the fuzz loop.
type Runner struct {
	cfg      Config
	instCfg  *config.InstanceConfig
	backends map[string]solver.Backend
	logger   *reporting.Logger
	metrics  *reporting.Metrics
}

// NewRunner builds a Runner from the given fuzz config, instance config,
// and resolved solver backends.
func NewRunner(cfg Config, instCfg *config.InstanceConfig, backends map[string]solver.Backend, logger *reporting.Logger, metrics *reporting.Metrics) *Runner {
	if cfg.Rounds <= 0 {
		cfg.Rounds = 5
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	return &Runner{cfg: cfg, instCfg: instCfg, backends: backends, logger: logger, metrics: metrics}
}

// roundRecord is one JSONL-logged round, adapted from the chaos runner's
// round log.
type roundRecord struct {
	Round     int    `json:"round"`
	Seed      uint64 `json:"seed"`
	Problems  int    `json:"problems"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// Run executes the fuzz loop, returning the number of instances tested and
// the aggregated findings.
func (r *Runner) Run(ctx context.Context) (int, *aggregator.Results, error) {
	var master *random.Source
	if r.cfg.Seed != nil {
		master = random.NewSeeded(*r.cfg.Seed)
	} else {
		master = random.NewEntropy()
	}

	results := aggregator.New()
	sched := oracle.NewScheduler(r.cfg.NWorkers)
	tested := 0

	for round := 1; round <= r.cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return tested, results, err
		}

		start := time.Now()
		var seed uint64
		for {
			seed = master.Uint64()
			if !results.Seen(seed) {
				break
			}
		}

		instCfg := r.instCfg
		gen, err := generator.New(instCfg, &seed)
		if err != nil {
			return tested, results, fmt.Errorf("fuzzer: round %d: building generator: %w", round, err)
		}
		lines := generator.Collect(gen)
		inst := generator.LinesToInstance(gen.NumVars(), gen.NumObjectives(), lines)

		findings := oracle.Compare(inst, r.backends, sched)
		results.Record(seed, findings)

		if len(findings) > 0 {
			path := filepath.Join(r.cfg.OutDir, fmt.Sprintf("buggy-%d.mcnf", seed))
			if err := writeBuggy(path, lines); err != nil {
				return tested, results, fmt.Errorf("fuzzer: round %d: persisting %s: %w", round, path, err)
			}
			snapPath := filepath.Join(r.cfg.OutDir, fmt.Sprintf("buggy-%d.yaml", seed))
			if err := writeRoundSnapshot(snapPath, round, seed, findings); err != nil {
				return tested, results, fmt.Errorf("fuzzer: round %d: persisting %s: %w", round, snapPath, err)
			}
			if r.logger != nil {
				r.logger.Warn("found problem", "seed", seed, "count", len(findings))
			}
		}

		if r.metrics != nil {
			r.metrics.ObserveRound(len(findings))
		}

		tested++
		if r.cfg.LogPath != "" {
			if err := appendRoundLog(r.cfg.LogPath, roundRecord{
				Round:     round,
				Seed:      seed,
				Problems:  len(findings),
				ElapsedMs: time.Since(start).Milliseconds(),
			}); err != nil {
				return tested, results, fmt.Errorf("fuzzer: round %d: writing log: %w", round, err)
			}
		}
	}

	return tested, results, nil
}

func writeBuggy(path string, lines []generator.Line) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return mcnf.WriteLines(f, lines)
}
