// Package config loads the YAML fuzzer configuration, following the same
// default-then-overlay-then-validate shape as the chaos runner's config
// loader.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root document: execution policy, instance-generation
// parameters, and the solver roster.
type Config struct {
	Execution    *ExecutionConfig        `yaml:"execution,omitempty"`
	Instances    InstanceConfig          `yaml:"instances"`
	Solvers      map[string]SolverConfig `yaml:"solvers,omitempty"`
	Minimization *MinimizationConfig     `yaml:"minimization,omitempty"`
}

// ExecutionConfig controls the oracle's worker pool.
type ExecutionConfig struct {
	NWorkers int `yaml:"n_workers"`
}

// U8Range is an inclusive range drawn from uniformly.
type U8Range struct {
	Min uint8 `yaml:"min"`
	Max uint8 `yaml:"max"`
}

// U64Range is a 64-bit inclusive range, used for weight variants.
type U64Range struct {
	Min uint64 `yaml:"min"`
	Max uint64 `yaml:"max"`
}

// U8RandomMaxRange draws a per-instance maximum from Max, with Min as a
// floor applied to every per-layer width draw.
type U8RandomMaxRange struct {
	Min uint8   `yaml:"min"`
	Max U8Range `yaml:"max"`
}

// U8ProbRange is zero with probability ZeroProb, else uniform in [Min,Max].
type U8ProbRange struct {
	ZeroProb float64 `yaml:"zero_prob"`
	Min      uint8   `yaml:"min"`
	Max      uint8   `yaml:"max"`
}

// U8DivRange scales a uniform draw by WidthPlusLast and divides by Div.
type U8DivRange struct {
	Min uint8 `yaml:"min"`
	Max uint8 `yaml:"max"`
	Div uint8 `yaml:"div"`
}

// InstanceConfig is the generator's configuration surface.
type InstanceConfig struct {
	Seed         *uint64          `yaml:"seed,omitempty"`
	Objectives   U8Range          `yaml:"objectives"`
	Layers       U8Range          `yaml:"layers"`
	LayerWidth   U8RandomMaxRange `yaml:"layer_width"`
	LayerClauses U8DivRange       `yaml:"layer_clauses"`
	Equalities   U8ProbRange      `yaml:"equalities"`
	Ands         U8ProbRange      `yaml:"ands"`
	Xors3        U8ProbRange      `yaml:"xors3"`
	Xors4        U8ProbRange      `yaml:"xors4"`
	MaxWeight    []U64Range       `yaml:"max_weight"`
}

// Objs returns the inclusive [min,max] range of objective counts.
func (c *InstanceConfig) Objs() (int, int) {
	return int(c.Objectives.Min), int(c.Objectives.Max)
}

// LayerRange returns the inclusive [min,max] range of layer counts.
func (c *InstanceConfig) LayerRange() (int, int) {
	return int(c.Layers.Min), int(c.Layers.Max)
}

// MaxLayerWidthRange returns the range the per-instance global max width is
// drawn from.
func (c *InstanceConfig) MaxLayerWidthRange() (int, int) {
	return int(c.LayerWidth.Max.Min), int(c.LayerWidth.Max.Max)
}

// MinLayerWidth returns the floor applied to every layer width draw.
func (c *InstanceConfig) MinLayerWidth() int {
	return int(c.LayerWidth.Min)
}

// LayerClausesRange returns the multiplier range and divisor for per-layer
// clause-count sampling.
func (c *InstanceConfig) LayerClausesRange() (int, int, int) {
	return int(c.LayerClauses.Min), int(c.LayerClauses.Max), int(c.LayerClauses.Div)
}

// GadgetRange returns the nonzero-probability and [min,max] range for one of
// the four gadget kinds.
func GadgetRange(r U8ProbRange) (nonzeroProb float64, min, max int) {
	return 1 - r.ZeroProb, int(r.Min), int(r.Max)
}

// SetMinObjs / SetMaxObjs / SetMinLayers / SetMaxLayers apply CLI overrides,
// mirroring the original config's setter methods.
func (c *InstanceConfig) SetMinObjs(v uint8)   { c.Objectives.Min = v }
func (c *InstanceConfig) SetMaxObjs(v uint8)   { c.Objectives.Max = v }
func (c *InstanceConfig) SetMinLayers(v uint8) { c.Layers.Min = v }
func (c *InstanceConfig) SetMaxLayers(v uint8) { c.Layers.Max = v }

// SolverConfig is a tagged variant identifying one of the five closed
// backend kinds plus free-form backend-specific options.
type SolverConfig struct {
	Kind    string                 `yaml:"kind"`
	Options map[string]interface{} `yaml:"options,omitempty"`
}

// MinimizationConfig toggles delta-debug passes. Reserved: see
// pkg/minimizer.
type MinimizationConfig struct {
	Modes []string `yaml:"modes,omitempty"`
}

// DefaultConfig returns the fuzzer's built-in defaults, used as the base
// that a loaded YAML document is overlaid onto.
func DefaultConfig() *Config {
	return &Config{
		Execution: &ExecutionConfig{NWorkers: 1},
		Instances: InstanceConfig{
			Objectives:   U8Range{Min: 1, Max: 4},
			Layers:       U8Range{Min: 1, Max: 5},
			LayerWidth:   U8RandomMaxRange{Min: 5, Max: U8Range{Min: 10, Max: 70}},
			LayerClauses: U8DivRange{Min: 100, Max: 250, Div: 100},
			Equalities:   U8ProbRange{ZeroProb: 2.0 / 3.0, Min: 0, Max: 31},
			Ands:         U8ProbRange{ZeroProb: 1.0 / 2.0, Min: 0, Max: 31},
			Xors3:        U8ProbRange{ZeroProb: 3.0 / 4.0, Min: 0, Max: 16},
			Xors4:        U8ProbRange{ZeroProb: 4.0 / 5.0, Min: 0, Max: 12},
			MaxWeight: []U64Range{
				{Min: 1, Max: 1},
				{Min: 1, Max: 32},
				{Min: 1, Max: 256},
				{Min: 1, Max: 65535},
				{Min: 1, Max: 1<<62 - 1},
			},
		},
		Solvers: map[string]SolverConfig{
			"reference": {Kind: "p_minimal"},
			"candidate": {Kind: "core_boosted_p_minimal"},
		},
	}
}

// Load reads a YAML config file at path, overlaying it onto DefaultConfig,
// expanding ${VAR}/$VAR environment references before parsing, and
// validating the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg as YAML to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Validate checks the worker count, the objectives, layers,
// layer_width.max and max_weight ranges, and that solver kinds are from
// the closed taxonomy. The layer_clauses and gadget ranges are not checked.
func (c *Config) Validate() error {
	if c.Execution != nil && c.Execution.NWorkers < 0 {
		return fmt.Errorf("execution.n_workers must be >= 0")
	}
	if c.Instances.Objectives.Min > c.Instances.Objectives.Max {
		return fmt.Errorf("instances.objectives: empty range")
	}
	if c.Instances.Layers.Min > c.Instances.Layers.Max || c.Instances.Layers.Min == 0 {
		return fmt.Errorf("instances.layers: empty or zero range")
	}
	if c.Instances.LayerWidth.Max.Min > c.Instances.LayerWidth.Max.Max {
		return fmt.Errorf("instances.layer_width.max: empty range")
	}
	if len(c.Instances.MaxWeight) == 0 {
		return fmt.Errorf("instances.max_weight: at least one variant required")
	}
	for i, v := range c.Instances.MaxWeight {
		if v.Min > v.Max || v.Min == 0 {
			return fmt.Errorf("instances.max_weight[%d]: invalid range", i)
		}
	}
	for id, sc := range c.Solvers {
		if !ValidBackendKind(sc.Kind) {
			return fmt.Errorf("solvers.%s: unknown kind %q", id, sc.Kind)
		}
	}
	return nil
}

// ValidBackendKind reports whether kind names one of the five closed
// backend variants.
func ValidBackendKind(kind string) bool {
	switch kind {
	case "p_minimal", "core_boosted_p_minimal", "bi_opt_sat_gte", "bi_opt_sat_dpw", "lower_bounding":
		return true
	default:
		return false
	}
}
