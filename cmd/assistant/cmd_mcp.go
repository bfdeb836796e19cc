package main

import (
	"github.com/spf13/cobra"

	"github.com/janhq/jan-assistant/internal/config"
	"github.com/janhq/jan-assistant/internal/infrastructure/logger"
	"github.com/janhq/jan-assistant/internal/infrastructure/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the assistant tools over MCP stdio",
	Long: `Expose every assistant tool to an MCP client over stdin/stdout.

Tool calls go through the same registry as the chat session, so results,
defaults and error strings are identical. Logs are written to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		loadEnvFiles()
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.New(cfg)

		ctx, stop := commandContext(cmd)
		defer stop()

		app, err := newApplication(ctx, cfg, log)
		if err != nil {
			return err
		}
		app.serveMetrics(ctx)

		server := mcpserver.New(cfg.ServiceName, version, app.registry, log)
		log.Info().Int("tools", app.registry.Len()).Msg("serving tools over MCP stdio")
		return mcpserver.ServeStdio(ctx, server)
	},
}
