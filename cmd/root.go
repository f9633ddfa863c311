package cmd

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wbh1/jiratui/internal/config"
	"github.com/wbh1/jiratui/internal/jira"
	"github.com/wbh1/jiratui/internal/logging"
	"github.com/wbh1/jiratui/internal/status"
	"github.com/wbh1/jiratui/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "jiratui",
	Short: "A terminal UI for searching and triaging Jira work items",
	Long: `jiratui is a terminal UI for Jira. It searches work items by project,
key and assignee against both Jira Cloud and self-hosted Data Center
instances, with a server-backed assignee autocomplete.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")

		cfg, err := config.Load(debug)
		if err != nil {
			return err
		}

		closeLog, err := logging.Setup(cfg.LogFile, cfg.Debug)
		if err != nil {
			return err
		}
		defer closeLog()

		if err := config.Validate(); err != nil {
			return err
		}

		client, err := jira.NewClient(jira.ClientOptions{
			BaseURL:    cfg.Jira.BaseURL,
			Username:   cfg.Jira.Username,
			Token:      cfg.Jira.APIToken,
			BearerAuth: cfg.Jira.BearerAuth,
			Cloud:      cfg.Jira.Cloud,
			APIVersion: cfg.Jira.APIVersion,
		})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		statusSvc := status.NewService()
		slog.Info("starting", "variant", client.Variant(), "baseURL", cfg.Jira.BaseURL)

		program := tea.NewProgram(
			tui.New(ctx, cfg, client, statusSvc),
			tea.WithAltScreen(),
		)
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolP("debug", "d", false, "Enable debug logging")
}

func Execute() error {
	return rootCmd.Execute()
}
