package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieBuddy/internal/config"
	"github.com/vadimtrunov/MovieBuddy/internal/core"
	"github.com/vadimtrunov/MovieBuddy/internal/metadata/omdb"
)

func newSearchCmd() *cobra.Command {
	var (
		year   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "search [title]",
		Short: "Search movies by title",
		Long:  "Look up every movie whose title matches or contains the given text and print its details.",
		Example: `  moviebuddy search casablanca
  moviebuddy search "the matrix" --year 1999
  moviebuddy search dune --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return runSearch(cmd.OutOrStdout(), title, year, asJSON)
		},
	}
	cmd.Flags().StringVarP(&year, "year", "y", "", "release year filter")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func runSearch(out io.Writer, title, year string, asJSON bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// stdout belongs to the results.
	logger := config.SetupStderrLogger(cfg.App.LogLevel)
	svc := initServices(cfg, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if asJSON {
		movies, err := svc.searcher.Search(ctx, title, year)
		if err != nil {
			return err
		}
		return writeJSON(out, movies)
	}

	p := tea.NewProgram(newSearchModel(ctx, svc.searcher, title, year), tea.WithOutput(out))
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("run search: %w", err)
	}

	sm, ok := m.(searchModel)
	if !ok {
		return errors.New("unexpected model type from tea program")
	}
	if sm.err != nil {
		return sm.err
	}
	return nil
}

func writeJSON(out io.Writer, movies []omdb.MovieDetail) error {
	if movies == nil {
		movies = []omdb.MovieDetail{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(movies)
}

// searchResultMsg carries the search outcome back to the TUI.
type searchResultMsg struct {
	movies []omdb.MovieDetail
	err    error
}

type searchModel struct {
	ctx      context.Context
	searcher core.MovieSearcher
	title    string
	year     string
	spinner  spinner.Model
	movies   []omdb.MovieDetail
	err      error
	done     bool
}

func newSearchModel(ctx context.Context, searcher core.MovieSearcher, title, year string) searchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleInfo
	return searchModel{
		ctx:      ctx,
		searcher: searcher,
		title:    title,
		year:     year,
		spinner:  s,
	}
}

func (m searchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runSearch())
}

func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case searchResultMsg:
		m.movies = msg.movies
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m searchModel) View() string {
	if m.done {
		if m.err != nil {
			return styleError.Render("Error: "+m.err.Error()) + "\n"
		}
		return renderMovies(m.movies)
	}
	query := fmt.Sprintf("%q", m.title)
	if m.year != "" {
		query += " (" + m.year + ")"
	}
	return m.spinner.View() + styleDim.Render(" Searching for "+query+"...") + "\n"
}

func (m searchModel) runSearch() tea.Cmd {
	return func() tea.Msg {
		movies, err := m.searcher.Search(m.ctx, m.title, m.year)
		return searchResultMsg{movies: movies, err: err}
	}
}

// renderMovies formats a result list for the terminal.
func renderMovies(movies []omdb.MovieDetail) string {
	if len(movies) == 0 {
		return styleDim.Render("No movies found") + "\n"
	}

	var sb strings.Builder
	noun := "movies"
	if len(movies) == 1 {
		noun = "movie"
	}
	sb.WriteString(styleHeader.Render(fmt.Sprintf("Found %d %s", len(movies), noun)) + "\n")
	for _, mv := range movies {
		sb.WriteString(renderMovie(mv))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderMovie(m omdb.MovieDetail) string {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render(m.Title) + " " + styleDim.Render("("+m.Year+")") + "\n")

	var facts []string
	if omdb.Known(m.Runtime) {
		facts = append(facts, m.Runtime)
	}
	if omdb.Known(m.IMDbRating) {
		facts = append(facts, styleRating.Render("★ "+m.IMDbRating))
	}
	if len(facts) > 0 {
		sb.WriteString("  " + strings.Join(facts, styleDim.Render(" · ")) + "\n")
	}
	if omdb.Known(m.Actors) {
		sb.WriteString("  " + m.Actors + "\n")
	}
	if omdb.Known(m.Plot) {
		sb.WriteString(stylePlot.Render(m.Plot) + "\n")
	}
	if m.HasPoster() {
		sb.WriteString(styleDim.Render("  poster: "+m.PosterURL) + "\n")
	}
	sb.WriteString(styleInfo.Render("  "+m.DetailPageURL) + "\n")
	return sb.String()
}
