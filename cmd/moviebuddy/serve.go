package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieBuddy/internal/config"
	"github.com/vadimtrunov/MovieBuddy/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web frontend",
		Long: "Serve the search form, HTML result pages, the JSON API under /api/movies,\n" +
			"/health and Prometheus metrics under /metrics.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(port)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}

func runServe(port int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	logger := config.SetupLogger(cfg.App.LogLevel)
	svc := initServices(cfg, logger)

	handler := web.NewHandler(svc.searcher, logger, web.WithMetrics(svc.metrics, svc.registry))
	srv := web.NewServer(cfg.Server.Port, handler, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("web frontend starting", slog.Int("port", cfg.Server.Port))
	return srv.Start(ctx)
}
