package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/lumen/pkg/pipeline"
	"github.com/aretw0/lumen/pkg/registry"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a pipeline definition",
	Long:  `Loads the pipeline file, checks its structure and compiles every rule without running any cycle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("pipeline")

		spec, err := pipeline.Load(path)
		if err != nil {
			return err
		}
		if _, err := registry.New().Build(spec.Root); err != nil {
			return fmt.Errorf("pipeline %q does not compile: %w", spec.Name, err)
		}

		fmt.Printf("Pipeline %q is valid\n", spec.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
