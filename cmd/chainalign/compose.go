package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/chainalign"
	"github.com/aretw0/chainalign/internal/cli"
	"github.com/aretw0/chainalign/internal/presentation/tui"
	"github.com/aretw0/chainalign/pkg/adapters/file"
	httpAdapter "github.com/aretw0/chainalign/pkg/adapters/http"
	"github.com/aretw0/chainalign/pkg/adapters/loam"
	"github.com/aretw0/chainalign/pkg/observability"
	"github.com/spf13/cobra"
)

var composeCmd = &cobra.Command{
	Use:   "compose [chain-set.yaml]",
	Short: "Edit a chain set interactively",
	Long: `Opens a shell to build chains unit by unit. Selecting a unit that breaks the rest of
a chain removes the links after it; submit sends the set to the session service.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sigCtx := cli.NotifyInterrupt(context.Background())
		defer sigCtx.Stop()

		styled := interactive()
		if styled {
			tui.PrintBanner(os.Stdout, chainalign.Version)
		}

		opts := []chainalign.Option{
			chainalign.WithLogger(logger),
			chainalign.WithLifecycleHooks(observability.LoggingHooks(logger)),
			chainalign.WithSessionService(httpAdapter.NewClient(cfg.Service.URL, httpAdapter.WithClientLogger(logger))),
		}
		if src := cli.CatalogSource(cfg, logger); src != nil {
			opts = append(opts, chainalign.WithCatalogSource(src))
		}

		composer, err := chainalign.New(sigCtx, opts...)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			set, err := file.LoadChainSet(args[0])
			if err != nil {
				return err
			}
			if err := set.Apply(composer.Chains()); err != nil {
				return err
			}
		}

		shellOpts := []cli.ShellOption{
			cli.WithRenderer(tui.NewRenderer(styled)),
			cli.WithShellLogger(logger),
		}
		if lib, err := loam.Open(cfg.Library.Dir); err != nil {
			logger.Warn("Chain set library unavailable", "dir", cfg.Library.Dir, "error", err)
		} else {
			shellOpts = append(shellOpts, cli.WithLibrary(lib))
		}
		shell := cli.NewShell(composer.Chains(), cmd.OutOrStdout(), shellOpts...)

		prompt := ""
		if styled {
			prompt = "> "
			fmt.Fprintln(cmd.OutOrStdout(), "Type help for commands.")
		}
		if err := shell.Run(sigCtx, cmd.InOrStdin(), prompt); err != nil {
			return err
		}
		if sig := sigCtx.Signal(); sig != nil {
			logger.Debug("Compose interrupted", "signal", sig)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(composeCmd)
}
