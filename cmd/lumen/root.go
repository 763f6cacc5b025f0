package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/lumen"
	"github.com/aretw0/lumen/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Lumen is a synthetic microscopy image generator",
	Long:  `Lumen builds composable feature graphs from pipeline files and resolves them into synthetic images with ground-truth provenance.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("pipeline", "p", "pipeline.yaml", "Path to the pipeline definition file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed (overrides the pipeline's seed)")
}

// newEngine builds an engine from the shared flags.
func newEngine(cmd *cobra.Command, opts ...lumen.Option) (*lumen.Engine, error) {
	path, _ := cmd.Flags().GetString("pipeline")
	levelName, _ := cmd.Flags().GetString("log-level")

	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	opts = append(opts, lumen.WithLogger(logging.New(level)))

	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetInt64("seed")
		opts = append(opts, lumen.WithSeed(seed))
	}

	return lumen.New(path, opts...)
}
