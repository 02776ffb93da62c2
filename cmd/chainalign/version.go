package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/chainalign"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of chainalign",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "chainalign version %s\n", strings.TrimSpace(chainalign.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
