package main

import (
	"context"
	"fmt"

	"github.com/aretw0/chainalign/internal/cli"
	"github.com/aretw0/chainalign/internal/presentation/tui"
	"github.com/aretw0/chainalign/pkg/adapters/file"
	httpAdapter "github.com/aretw0/chainalign/pkg/adapters/http"
	"github.com/aretw0/chainalign/pkg/registry"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <chain-set.yaml>",
	Short: "Check a chain-set document",
	Long: `Validates every chain of a chain-set document and the consistency of the set.
With --submit a valid set is sent to the session service (service.url).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cat, err := cli.LoadCatalog(ctx, cfg, logger)
		if err != nil {
			return err
		}
		set, err := file.LoadChainSet(args[0])
		if err != nil {
			return err
		}

		regOpts := []registry.Option{registry.WithLogger(logger)}
		submit, _ := cmd.Flags().GetBool("submit")
		if submit {
			regOpts = append(regOpts, registry.WithSessionService(httpAdapter.NewClient(cfg.Service.URL, httpAdapter.WithClientLogger(logger))))
		}

		reg := registry.New(cat, regOpts...)
		if err := set.Apply(reg); err != nil {
			return err
		}

		report := reg.Validate()
		out, err := tui.NewRenderer(interactive())(cli.RenderReport(report))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)

		if !report.Valid {
			return fmt.Errorf("chain set %s is invalid", args[0])
		}
		if !submit {
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, cfg.Service.Timeout)
		defer cancel()
		resp, err := reg.Submit(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (session %s)\n", resp.Message, resp.SessionID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("submit", false, "start a comparison session when the set is valid")
}
