package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vadimtrunov/MovieBuddy/internal/core"
	"github.com/vadimtrunov/MovieBuddy/internal/metadata/omdb"
)

// upstreamFailureMessage is what clients see when the search fails upstream.
// The cause is logged only.
const upstreamFailureMessage = "movie search is temporarily unavailable, please try again later"

// Deps holds backend dependencies for MCP tool handlers.
type Deps struct {
	Searcher core.MovieSearcher
}

// Server wraps an MCP SDK server with MovieBuddy tool handlers.
type Server struct {
	server *mcpsdk.Server
	deps   Deps
	logger *slog.Logger
}

// NewServer creates an MCP server with the MovieBuddy tools registered.
func NewServer(deps Deps, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if version == "" {
		version = "dev"
	}

	s := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "moviebuddy",
			Version: version,
		},
		&mcpsdk.ServerOptions{Logger: logger},
	)

	srv := &Server{server: s, deps: deps, logger: logger}
	s.AddTool(searchMoviesTool(), srv.handleSearchMovies)
	return srv
}

// ServeStdio runs the MCP server over stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

// MCPServer returns the underlying MCP SDK server (for testing).
func (s *Server) MCPServer() *mcpsdk.Server {
	return s.server
}

func searchMoviesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name: "search_movies",
		Description: "Search OMDb for movies whose title matches or contains the given text. " +
			"Returns a JSON array with IMDb id, title, year, poster URL, runtime, actors, IMDb rating, plot and IMDb page URL for each movie.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "The movie title, or part of it, to search for",
				},
				"year": map[string]any{
					"type":        []any{"string", "integer"},
					"description": "Optional release year to filter results",
				},
			},
			"required": []any{"title"},
		},
	}
}

func (s *Server) handleSearchMovies(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Searcher == nil {
		return toolError("movie search is not configured"), nil
	}

	title, err := extractStringFromArgs(req.Params.Arguments, "title")
	if err != nil {
		return toolError(err.Error()), nil
	}
	year, err := extractYearFromArgs(req.Params.Arguments, "year")
	if err != nil {
		return toolError(err.Error()), nil
	}

	movies, err := s.deps.Searcher.Search(ctx, title, year)
	if errors.Is(err, omdb.ErrRateLimitExceeded) {
		return toolError(omdb.ErrRateLimitExceeded.Error()), nil
	}
	if err != nil {
		s.logger.Error("mcp search failed",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return toolError(upstreamFailureMessage), nil
	}
	if movies == nil {
		movies = []omdb.MovieDetail{}
	}
	return toolJSON(movies)
}

// toolJSON marshals v to JSON and returns it as text content.
func toolJSON(v any) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

// toolError returns a tool result indicating an error.
func toolError(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
		IsError: true,
	}
}

// extractStringFromArgs extracts a required string argument from raw JSON arguments.
func extractStringFromArgs(raw json.RawMessage, key string) (string, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return "", err
	}

	val, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}

	s, ok := val.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%s must be a non-empty string", key)
	}
	return s, nil
}

// extractYearFromArgs reads an optional year given as a string or a number.
// Absent or blank yields "".
func extractYearFromArgs(raw json.RawMessage, key string) (string, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return "", err
	}

	switch v := args[key].(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	case float64:
		if v != float64(int(v)) {
			return "", fmt.Errorf("%s must be a whole number, got %v", key, v)
		}
		return strconv.Itoa(int(v)), nil
	default:
		return "", fmt.Errorf("%s must be a string or number, got %T", key, v)
	}
}

func decodeArgs(raw json.RawMessage) (map[string]any, error) {
	args := map[string]any{}
	if len(raw) == 0 {
		return args, nil
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return args, nil
}
