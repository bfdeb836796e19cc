package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/janhq/jan-assistant/internal/config"
	"github.com/janhq/jan-assistant/internal/infrastructure/gcalendar"
)

var calendarAuthCmd = &cobra.Command{
	Use:   "calendar-auth",
	Short: "Authorize Google Calendar access and write the token file",
	Long: `Run the OAuth installed-app flow for Google Calendar.

Reads the client secret from GOOGLE_CREDENTIALS_FILE, prints a consent URL,
asks for the authorization code and writes the token to GOOGLE_TOKEN_FILE.
Set SCHEDULER_BACKEND=google to use the calendar afterwards.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		loadEnvFiles()
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx, stop := commandContext(cmd)
		defer stop()

		oauthCfg, err := gcalendar.LoadOAuthConfig(cfg.GoogleCredentialsFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Open this URL in your browser and authorize access:")
		fmt.Fprintln(out)
		fmt.Fprintln(out, gcalendar.AuthURL(oauthCfg, uuid.NewString()))
		fmt.Fprintln(out)
		fmt.Fprint(out, "Authorization code: ")

		reader := bufio.NewReader(cmd.InOrStdin())
		code, err := reader.ReadString('\n')
		if err != nil && strings.TrimSpace(code) == "" {
			return fmt.Errorf("read authorization code: %w", err)
		}
		code = strings.TrimSpace(code)
		if code == "" {
			return fmt.Errorf("authorization code is empty")
		}

		tok, err := gcalendar.Exchange(ctx, oauthCfg, code)
		if err != nil {
			return err
		}
		if err := gcalendar.SaveToken(cfg.GoogleTokenFile, tok); err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ Token saved to %s\n", cfg.GoogleTokenFile)
		return nil
	},
}
