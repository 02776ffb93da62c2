package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/chainalign/internal/cli"
	"github.com/aretw0/chainalign/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the catalog and the chain validator as MCP tools, so AI agents can look up
compatible units and check chain sets.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sigCtx := cli.NotifyInterrupt(context.Background())
		defer sigCtx.Stop()

		cat, err := cli.LoadCatalog(sigCtx, cfg, logger)
		if err != nil {
			return err
		}

		srv := mcp.NewServer(cat, mcp.WithLogger(logger))

		switch cfg.MCP.Transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting chainalign MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting chainalign MCP Server (SSE)", "addr", cfg.MCP.Addr)
			if err := srv.ServeSSE(sigCtx, cfg.MCP.Addr, cfg.MCP.BaseURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP Server stopped gracefully", "reason", sigCtx.Reason())
			return nil
		}
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", cfg.MCP.Transport)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8080", "Address to listen on (only for SSE)")
	mcpCmd.Flags().String("base-url", "http://localhost:8080", "Public base URL (only for SSE)")

	bindFlag(mcpCmd, "mcp.transport", "transport")
	bindFlag(mcpCmd, "mcp.addr", "addr")
	bindFlag(mcpCmd, "mcp.base_url", "base-url")
}
