package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/chainalign/internal/cli"
	"github.com/aretw0/chainalign/internal/presentation/tui"
	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the units of the catalog",
	Long:  `Lists catalog units, optionally filtered by media type, provider or capability.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := cli.LoadCatalog(context.Background(), cfg, logger)
		if err != nil {
			return err
		}

		var q catalog.Query
		for flag, dst := range map[string]*domain.MediaType{"input": &q.Input, "output": &q.Output} {
			tag, _ := cmd.Flags().GetString(flag)
			if tag == "" {
				continue
			}
			if *dst, err = domain.ParseMediaType(tag); err != nil {
				return err
			}
		}

		units := cat.Filter(q)
		if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
			units = intersect(units, cat.ByProvider(provider))
		}
		if capability, _ := cmd.Flags().GetString("capability"); capability != "" {
			units = intersect(units, cat.ByCapability(capability))
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(units)
		}

		out, err := tui.NewRenderer(interactive())(cli.RenderUnits(units))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func intersect(units, keep []domain.Unit) []domain.Unit {
	ids := make(map[string]struct{}, len(keep))
	for _, u := range keep {
		ids[u.ID] = struct{}{}
	}
	out := make([]domain.Unit, 0, len(units))
	for _, u := range units {
		if _, ok := ids[u.ID]; ok {
			out = append(out, u)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().String("input", "", "only units consuming this medium")
	catalogCmd.Flags().String("output", "", "only units producing this medium")
	catalogCmd.Flags().String("provider", "", "only units of this provider")
	catalogCmd.Flags().String("capability", "", "only units advertising this capability")
	catalogCmd.Flags().Bool("json", false, "print units as JSON")
}
