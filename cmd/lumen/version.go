package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/lumen"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lumen",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lumen version %s\n", strings.TrimSpace(lumen.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
