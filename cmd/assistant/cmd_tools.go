package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/janhq/jan-assistant/internal/config"
	"github.com/janhq/jan-assistant/internal/infrastructure/logger"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools the assistant can call",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		loadEnvFiles()
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx, stop := commandContext(cmd)
		defer stop()

		app, err := newApplication(ctx, cfg, logger.New(cfg))
		if err != nil {
			return err
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPARAMETERS\tDESCRIPTION")
		for _, spec := range app.registry.Specs() {
			params := make([]string, 0, len(spec.Params))
			for _, p := range spec.Params {
				name := p.Name
				if !p.Required {
					name += "?"
				}
				params = append(params, name)
			}
			desc := spec.Description
			if !verbose {
				desc = firstLine(desc)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", spec.Name, strings.Join(params, ", "), desc)
		}
		return w.Flush()
	},
}

func init() {
	toolsCmd.Flags().BoolP("verbose", "v", false, "Show full descriptions")
}

func firstLine(s string) string {
	if idx := strings.Index(s, ". "); idx > 0 {
		return s[:idx+1]
	}
	return s
}
