package core

import (
	"context"

	"github.com/vadimtrunov/MovieBuddy/internal/httpclient"
	"github.com/vadimtrunov/MovieBuddy/internal/metadata/omdb"
)

// Fetcher retrieves raw response text from an absolute URL.
type Fetcher interface {
	// FetchText blocks until the body has been read
	FetchText(ctx context.Context, url string) (string, error)

	// FetchTextAsync returns immediately; the Future resolves with the body or a transport error
	FetchTextAsync(ctx context.Context, url string) *httpclient.Future
}

// MovieSearcher is the single entry point presentation layers call into.
type MovieSearcher interface {
	// Search resolves a title (and optional year) into detailed movie records
	Search(ctx context.Context, title, year string) ([]omdb.MovieDetail, error)
}

// Frontend defines the interface for long-running user-facing frontends (web, Telegram)
type Frontend interface {
	// Start runs the frontend until ctx is canceled
	Start(ctx context.Context) error

	// Name returns the frontend name (e.g. "web", "telegram")
	Name() string
}
