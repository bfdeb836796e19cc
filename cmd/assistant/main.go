package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/janhq/jan-assistant/internal/config"
	"github.com/janhq/jan-assistant/internal/infrastructure/logger"
	"github.com/janhq/jan-assistant/internal/interfaces/cli"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "AI personal assistant - chat with a model that can use tools",
	Long: `assistant is an interactive personal assistant.

Type a message and the model answers, calling tools when it needs to:
email, web search, meetings, pizza orders, PDF reading and questions.

Configuration is read from the environment and from .env files.

Examples:
  assistant                  # start a chat session
  assistant tools            # list available tools
  assistant mcp              # serve the tools over MCP stdio
  assistant calendar-auth    # authorize Google Calendar access`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runChat,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(calendarAuthCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg)

	ctx, stop := commandContext(cmd)
	defer stop()

	if cfg.ModelAPIKey() == "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s API not available. Please set %s in your .env file\n", cfg.ModelName, cfg.ModelAPIKeyEnv())
		return fmt.Errorf("%s is not set", cfg.ModelAPIKeyEnv())
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	app.serveMetrics(ctx)

	session := cli.NewSession(cli.Config{
		Name:          "AI Personal Assistant",
		Version:       version,
		HistoryWindow: cfg.HistoryWindow,
	}, app.loop, cmd.InOrStdin(), cmd.OutOrStdout(), log)

	if err := session.Run(ctx); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	log.Info().Msg("session exited cleanly")
	return nil
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}

// commandContext returns a context cancelled on SIGINT/SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
