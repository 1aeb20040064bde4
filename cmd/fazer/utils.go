package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/chrjabs/fazer/pkg/config"
	"github.com/chrjabs/fazer/pkg/solver"
)

// loadConfig loads cfgFile if it exists, else falls back to built-in
// defaults.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); err != nil {
		cfg := config.DefaultConfig()
		if verr := cfg.Validate(); verr != nil {
			return nil, verr
		}
		return cfg, nil
	}
	return config.Load(cfgFile)
}

// seedOverride returns the CLI --seed flag as a *uint64, or nil if unset
// (0 means "auto": let the config's seed, or a fresh one, take over).
func seedOverride() *uint64 {
	if seedFlag == 0 {
		return nil
	}
	v := uint64(seedFlag)
	return &v
}

// buildBackends resolves cfg's solver roster into runnable pkg/solver
// backends, registering the closed five-kind taxonomy's stub reference
// implementation as the default factory for every kind. Real engines are
// plugged in as separate Backend implementations; none ship here.
func buildBackends(cfg *config.Config) (map[string]solver.Backend, error) {
	reg := solver.NewRegistry()
	solver.RegisterDefaults(reg)

	backends := make(map[string]solver.Backend, len(cfg.Solvers))
	for id, sc := range cfg.Solvers {
		backend, err := reg.Build(solver.BackendKind(sc.Kind), sc.Options)
		if err != nil {
			return nil, fmt.Errorf("solver %q: %w", id, err)
		}
		backends[id] = backend
	}
	return backends, nil
}

// useColor reports whether diagnostic output should be colorized, per
// --color auto|always|never.
func useColor() bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}
