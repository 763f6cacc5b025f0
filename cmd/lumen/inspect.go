package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/lumen/internal/presentation/graph"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the structure of the compiled feature graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		mermaid, _ := cmd.Flags().GetBool("mermaid")

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		info := engine.Inspect()
		if mermaid {
			fmt.Print(graph.GenerateMermaid(info))
			return nil
		}
		fmt.Print(info.String())
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("mermaid", false, "Emit a Mermaid flowchart instead of a tree")
	rootCmd.AddCommand(inspectCmd)
}
