package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/difr/internal/config"
	"github.com/Sumatoshi-tech/difr/internal/mcp"
	"github.com/Sumatoshi-tech/difr/internal/observability"
)

// mcpCmd creates the MCP server command.
func mcpCmd(globals *globalFlags) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes the comparison as a tool that AI agents can discover
and invoke:
  - difr_compare: compare two files given as absolute paths`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSettings(cmd, globals, nil)
			if err != nil {
				return err
			}

			// Stdout carries the protocol, logs always go to stderr as JSON.
			cfg.Logging.Format = config.LogFormatJSON
			if debug {
				cfg.Logging.Level = levelVerbose
			}

			obsCfg := observabilityConfig(cfg, observability.ModeMCP, cmd.ErrOrStderr())
			obsCfg.DebugTrace = debug

			providers, err := observability.Init(obsCfg)
			if err != nil {
				return err
			}

			defer func() {
				shutdownErr := providers.Shutdown(context.WithoutCancel(cmd.Context()))
				if shutdownErr != nil {
					providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
				}
			}()

			red, err := observability.NewREDMetrics(providers.Meter)
			if err != nil {
				return err
			}

			comparisons, err := observability.NewComparisonMetrics(providers.Meter)
			if err != nil {
				return err
			}

			srv := mcp.NewServer(mcp.ServerDeps{
				Logger:      providers.Logger,
				Metrics:     red,
				Comparisons: comparisons,
				Tracer:      providers.Tracer,
			})

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")

	return cmd
}
