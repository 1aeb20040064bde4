package fuzzer

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chrjabs/fazer/pkg/oracle"
)

// roundSnapshot is a diagnostic dump written alongside a buggy-<seed>.mcnf
// artifact: enough to see which solver raised which problem without
// re-running the oracle against the persisted instance.
type roundSnapshot struct {
	Round    int                    `yaml:"round"`
	Seed     uint64                 `yaml:"seed"`
	Findings []snapshotFindingGroup `yaml:"findings"`
}

type snapshotFindingGroup struct {
	Solver   string   `yaml:"solver"`
	Problems []string `yaml:"problems"`
}

// writeRoundSnapshot groups findings by solver and writes them as a YAML
// document to path, the scenario-snapshot companion to the .mcnf artifact.
func writeRoundSnapshot(path string, round int, seed uint64, findings []oracle.Finding) error {
	bySolver := make(map[string][]string)
	var order []string
	for _, f := range findings {
		if _, seen := bySolver[f.SolverID]; !seen {
			order = append(order, f.SolverID)
		}
		bySolver[f.SolverID] = append(bySolver[f.SolverID], f.Problem.String())
	}

	snap := roundSnapshot{Round: round, Seed: seed}
	for _, id := range order {
		snap.Findings = append(snap.Findings, snapshotFindingGroup{Solver: id, Problems: bySolver[id]})
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
