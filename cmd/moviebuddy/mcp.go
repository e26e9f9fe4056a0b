package main

import (
	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieBuddy/internal/config"
	mcpserver "github.com/vadimtrunov/MovieBuddy/internal/mcp"
)

// newMCPServeCmd returns the hidden "mcp-serve" subcommand.
// It exposes movie search to MCP clients over stdin/stdout.
func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "mcp-serve",
		Short:  "Start MCP server over stdio",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			// stdout carries the MCP protocol.
			logger := config.SetupStderrLogger(cfg.App.LogLevel)
			svc := initServices(cfg, logger)

			srv := mcpserver.NewServer(mcpserver.Deps{Searcher: svc.searcher}, version, logger)
			return srv.ServeStdio(cmd.Context())
		},
	}
}
