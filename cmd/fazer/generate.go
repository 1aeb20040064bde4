package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrjabs/fazer/pkg/generator"
	"github.com/chrjabs/fazer/pkg/mcnf"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Args:    cobra.NoArgs,
	Short:   "Stream one generated instance to standard output",
	Long: `Generate streams one layered, gadget-structured multi-objective
weighted-CNF instance to standard output as Extended DIMACS MCNF.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Uint8("min-objs", 0, "override instances.objectives.min (0 = use config)")
	generateCmd.Flags().Uint8("max-objs", 0, "override instances.objectives.max (0 = use config)")
	generateCmd.Flags().Uint8("min-layers", 0, "override instances.layers.min (0 = use config)")
	generateCmd.Flags().Uint8("max-layers", 0, "override instances.layers.max (0 = use config)")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	minObjs, _ := cmd.Flags().GetUint8("min-objs")
	maxObjs, _ := cmd.Flags().GetUint8("max-objs")
	minLayers, _ := cmd.Flags().GetUint8("min-layers")
	maxLayers, _ := cmd.Flags().GetUint8("max-layers")
	if minObjs > 0 {
		cfg.Instances.SetMinObjs(minObjs)
	}
	if maxObjs > 0 {
		cfg.Instances.SetMaxObjs(maxObjs)
	}
	if minLayers > 0 {
		cfg.Instances.SetMinLayers(minLayers)
	}
	if maxLayers > 0 {
		cfg.Instances.SetMaxLayers(maxLayers)
	}
	if verr := cfg.Validate(); verr != nil {
		return fmt.Errorf("invalid config: %w", verr)
	}

	seed := seedOverride()
	if seed == nil {
		seed = cfg.Instances.Seed
	}

	gen, err := generator.New(&cfg.Instances, seed)
	if err != nil {
		return fmt.Errorf("building generator: %w", err)
	}

	_, err = mcnf.WriteGenerator(os.Stdout, gen)
	return err
}
