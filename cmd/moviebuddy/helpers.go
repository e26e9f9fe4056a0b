package main

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vadimtrunov/MovieBuddy/internal/config"
	"github.com/vadimtrunov/MovieBuddy/internal/httpclient"
	"github.com/vadimtrunov/MovieBuddy/internal/metrics"
	"github.com/vadimtrunov/MovieBuddy/internal/search"
)

// Lipgloss styles used across commands.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	styleRating  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow

	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")) // cyan bold
	stylePlot  = lipgloss.NewStyle().Width(78).PaddingLeft(2)

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")).
			MarginBottom(1)
)

// services bundles what every long-running command needs.
type services struct {
	searcher *search.Service
	metrics  *metrics.Metrics
	registry *prometheus.Registry
}

// loadConfig loads and validates the configuration file.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// initServices wires the HTTP client, metrics and search service.
func initServices(cfg *config.Config, logger *slog.Logger) *services {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	client := httpclient.New(httpclient.Config{Timeout: cfg.HTTP.Timeout}, logger)
	svc := search.New(client, cfg.OMDb.APIKey, logger,
		search.WithBaseURL(cfg.OMDb.BaseURL),
		search.WithMetrics(m),
	)
	logger.Info("OMDb client initialized",
		slog.String("url", httpclient.RedactURL(cfg.OMDb.BaseURL)),
		slog.Duration("timeout", cfg.HTTP.Timeout),
	)

	return &services{searcher: svc, metrics: m, registry: reg}
}
