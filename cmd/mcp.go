package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/Gugan3007/nexus-prime/internal/mcp"
	"github.com/Gugan3007/nexus-prime/internal/observability"
)

// newMCPCmd creates the `mcp` command.
func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analyzer as MCP tools over stdio",
		Long: `Starts an MCP server on stdin/stdout exposing the analysis pipeline as
tools for agent integration: analyze_vendor, analyze_document,
compare_vendors, list_analyses, get_analysis, audit_log, clear_store,
health, list_samples, and analyze_samples.

Analyses persist for the lifetime of the server process. stdout is the
protocol channel; console logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			logger := observability.GetLogger()

			svc, err := buildService(ctx, cfg, Version)
			if err != nil {
				return err
			}

			logger.Info("Starting MCP server on stdio", zap.String("version", Version))
			if err := mcpserver.Serve(mcpserver.NewServer(svc, logger, Version)); err != nil {
				return fmt.Errorf("MCP server terminated: %w", err)
			}
			return nil
		},
	}
}
