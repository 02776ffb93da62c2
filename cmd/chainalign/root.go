package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/chainalign/internal/cli"
	"github.com/aretw0/chainalign/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile string
	v       = config.New()
	cfg     config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chainalign",
	Short: "Compose and validate chains of media-processing models",
	Long: `chainalign builds chains of models (text, audio, video, image) where every model
consumes what the previous one produces, validates chain sets for head-to-head
comparison and serves a reference comparison session service.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(v, cfgFile); err != nil {
			return err
		}
		logger, err = cli.NewLogger(cfg.LogLevel)
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: .chainalign/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("catalog", "", "catalog file (YAML or JSON) replacing the built-in catalog")
	rootCmd.PersistentFlags().String("catalog-url", "", "session service to fetch the catalog from")

	rootCmd.PersistentFlags().String("service", "http://localhost:8000", "session service URL used to submit chain sets")
	rootCmd.PersistentFlags().String("library", ".chainalign/library", "directory of named chain sets")

	bindFlag(rootCmd, "log_level", "log-level")
	bindFlag(rootCmd, "service.url", "service")
	bindFlag(rootCmd, "catalog.path", "catalog")
	bindFlag(rootCmd, "catalog.url", "catalog-url")
	bindFlag(rootCmd, "library.dir", "library")
}

// bindFlag binds a persistent or local flag of cmd to a config key.
func bindFlag(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	_ = v.BindPFlag(key, f)
}

// interactive reports whether stdout is a terminal.
func interactive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
