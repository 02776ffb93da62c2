package main

import (
	"context"
	"fmt"

	"github.com/aretw0/chainalign/internal/cli"
	"github.com/aretw0/chainalign/internal/presentation/tui"
	"github.com/aretw0/chainalign/pkg/adapters/file"
	"github.com/aretw0/chainalign/pkg/adapters/loam"
	"github.com/aretw0/chainalign/pkg/registry"
	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List the named chain sets kept in the library",
	Long: `The library is a directory of chain-set documents (library.dir). Each stored set is
listed with the outcome of validating it against the current catalog.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		lib, err := loam.Open(cfg.Library.Dir)
		if err != nil {
			return err
		}
		cat, err := cli.LoadCatalog(ctx, cfg, logger)
		if err != nil {
			return err
		}

		names, err := lib.List(ctx)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Library is empty.")
			return nil
		}

		for _, name := range names {
			entry, err := lib.Load(ctx, name)
			if err != nil {
				return err
			}
			status := "valid"
			reg := registry.New(cat)
			if err := entry.Set.Apply(reg); err != nil {
				status = err.Error()
			} else if report := reg.Validate(); !report.Valid {
				status = fmt.Sprintf("%d issue(s)", len(report.Issues))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d chain(s)  %s\n", name, len(entry.Set.Chains), status)
		}
		return nil
	},
}

var libraryImportCmd = &cobra.Command{
	Use:   "import <name> <chain-set.yaml>",
	Short: "Store a chain-set document in the library",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		set, err := file.LoadChainSet(args[1])
		if err != nil {
			return err
		}
		lib, err := loam.Open(cfg.Library.Dir)
		if err != nil {
			return err
		}
		note, _ := cmd.Flags().GetString("note")
		if err := lib.Save(ctx, args[0], set, note); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %d chain(s) as %s.\n", len(set.Chains), args[0])
		return nil
	},
}

var libraryShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stored chain set and its validation report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		lib, err := loam.Open(cfg.Library.Dir)
		if err != nil {
			return err
		}
		entry, err := lib.Load(ctx, args[0])
		if err != nil {
			return err
		}
		cat, err := cli.LoadCatalog(ctx, cfg, logger)
		if err != nil {
			return err
		}

		reg := registry.New(cat, registry.WithLogger(logger))
		if err := entry.Set.Apply(reg); err != nil {
			return err
		}

		views := make([]cli.ChainView, 0, reg.Len())
		for _, id := range reg.IDs() {
			ed, err := reg.Editor(id)
			if err != nil {
				return err
			}
			views = append(views, cli.ChainView{ID: id, Links: ed.Links()})
		}

		markdown := cli.RenderChains(views) + "\n" + cli.RenderReport(reg.Validate())
		if entry.Note != "" {
			markdown = entry.Note + "\n\n" + markdown
		}
		out, err := tui.NewRenderer(interactive())(markdown)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryImportCmd, libraryShowCmd)

	libraryImportCmd.Flags().String("note", "", "free-form note stored with the set")
}
