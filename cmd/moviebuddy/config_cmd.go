package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieBuddy/internal/httpclient"
)

// newConfigCmd returns the "config" subcommand group for configuration management.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

// newConfigValidateCmd returns the "config validate" subcommand that checks config file validity.
func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleSuccess.Render("✓ Configuration is valid"))
			fmt.Fprintln(out, styleDim.Render(fmt.Sprintf("  omdb:     %s", httpclient.RedactURL(cfg.OMDb.BaseURL))))
			fmt.Fprintln(out, styleDim.Render(fmt.Sprintf("  web port: %d", cfg.Server.Port)))
			telegram := "disabled"
			if cfg.Telegram != nil {
				telegram = fmt.Sprintf("enabled (%d allowed users)", len(cfg.Telegram.AllowedUserIDs))
			}
			fmt.Fprintln(out, styleDim.Render("  telegram: "+telegram))
			return nil
		},
	}
}
