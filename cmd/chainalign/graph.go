package main

import (
	"context"
	"fmt"

	"github.com/aretw0/chainalign/internal/cli"
	"github.com/aretw0/chainalign/internal/presentation/graph"
	"github.com/aretw0/chainalign/pkg/adapters/file"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <chain-set.yaml>",
	Short: "Export a chain-set visualization",
	Long:  `Outputs a Mermaid diagram (graph LR) with one subgraph per chain; incompatible links are highlighted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := cli.LoadCatalog(context.Background(), cfg, logger)
		if err != nil {
			return err
		}
		set, err := file.LoadChainSet(args[0])
		if err != nil {
			return err
		}
		resolved, err := set.Resolve(cat)
		if err != nil {
			return err
		}

		chains := make([]graph.Chain, len(resolved))
		for i, units := range resolved {
			chains[i] = graph.Chain{ID: domain.ChainID(i + 1), Units: units}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(chains, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
