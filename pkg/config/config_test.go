package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chrjabs/fazer/pkg/config"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := config.DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateAcceptsZeroObjectives(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Instances.Objectives = config.U8Range{Min: 0, Max: 0}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() rejected a zero-objectives config: %v", err)
	}
}

func TestValidateRejectsEmptyObjectivesRange(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Instances.Objectives = config.U8Range{Min: 4, Max: 2}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() accepted an empty objectives range")
	}
}

func TestValidateRejectsZeroLayers(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Instances.Layers = config.U8Range{Min: 0, Max: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() accepted a zero-layers range")
	}
}

func TestValidateRejectsUnknownSolverKind(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Solvers["bogus"] = config.SolverConfig{Kind: "not_a_real_kind"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() accepted an unknown solver kind")
	}
}

func TestValidBackendKindClosedTaxonomy(t *testing.T) {
	for _, kind := range []string{
		"p_minimal", "core_boosted_p_minimal", "bi_opt_sat_gte", "bi_opt_sat_dpw", "lower_bounding",
	} {
		if !config.ValidBackendKind(kind) {
			t.Fatalf("ValidBackendKind(%q) = false, want true", kind)
		}
	}
	if config.ValidBackendKind("made_up") {
		t.Fatal("ValidBackendKind(\"made_up\") = true, want false")
	}
}

func TestLoadOverlaysOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "execution:\n  n_workers: 8\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Execution.NWorkers != 8 {
		t.Fatalf("Execution.NWorkers = %d, want 8 (from overlay)", cfg.Execution.NWorkers)
	}
	if cfg.Instances.Layers.Max != config.DefaultConfig().Instances.Layers.Max {
		t.Fatal("Load should leave unspecified fields at their default values")
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := config.DefaultConfig()
	cfg.Execution.NWorkers = 3
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Execution.NWorkers != 3 {
		t.Fatalf("Execution.NWorkers = %d, want 3", loaded.Execution.NWorkers)
	}
}

func TestSettersApplyOverrides(t *testing.T) {
	inst := &config.InstanceConfig{}
	inst.SetMinObjs(1)
	inst.SetMaxObjs(3)
	inst.SetMinLayers(2)
	inst.SetMaxLayers(6)

	minO, maxO := inst.Objs()
	if minO != 1 || maxO != 3 {
		t.Fatalf("Objs() = (%d,%d), want (1,3)", minO, maxO)
	}
	minL, maxL := inst.LayerRange()
	if minL != 2 || maxL != 6 {
		t.Fatalf("LayerRange() = (%d,%d), want (2,6)", minL, maxL)
	}
}
