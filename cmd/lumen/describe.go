package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/lumen/internal/presentation/tui"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Render the pipeline's description",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		spec := engine.Spec()
		if spec == nil {
			return fmt.Errorf("no pipeline definition loaded")
		}

		tui.PrintBanner()

		fmt.Printf("Pipeline: %s (seed %d)\n", spec.Name, engine.Seed())
		if spec.Description == "" {
			fmt.Println("No description provided.")
			return nil
		}

		render := tui.NewRenderer()
		out, err := render(spec.Description)
		if err != nil {
			// Fall back to raw markdown if the terminal renderer fails.
			fmt.Println(spec.Description)
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
