package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vadimtrunov/MovieBuddy/internal/core"
	"github.com/vadimtrunov/MovieBuddy/internal/httpclient"
	"github.com/vadimtrunov/MovieBuddy/internal/metadata/omdb"
	"github.com/vadimtrunov/MovieBuddy/internal/metrics"
)

// ErrMissingTitle is returned when Search or SearchIDs is called without a title.
var ErrMissingTitle = errors.New("required request parameter 'title' is not present")

// Service resolves a title into detailed movie records via OMDb.
// It holds only read-only configuration and is safe for concurrent use.
type Service struct {
	fetcher core.Fetcher
	baseURL string
	apiKey  string
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// compile-time check.
var _ core.MovieSearcher = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithBaseURL points the service at a different OMDb endpoint.
func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		if baseURL != "" {
			s.baseURL = baseURL
		}
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New creates a Service that reaches OMDb through fetcher.
func New(fetcher core.Fetcher, apiKey string, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		fetcher: fetcher,
		baseURL: omdb.DefaultBaseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs both phases: title/year to ids, then ids to details.
// Only a failed search request or the rate-limit signal make it fail.
func (s *Service) Search(ctx context.Context, title, year string) ([]omdb.MovieDetail, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveSearch(time.Since(start)) }()

	ids, err := s.SearchIDs(ctx, title, year)
	if err != nil {
		return nil, err
	}

	movies := s.FetchDetails(ctx, ids)
	s.logger.Info("search completed",
		slog.String("title", title),
		slog.String("year", year),
		slog.Int("hits", len(ids)),
		slog.Int("movies", len(movies)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return movies, nil
}

// SearchIDs resolves a title (and optional year) to IMDb ids in upstream order.
// A title that matches nothing yields an empty slice and no error.
func (s *Service) SearchIDs(ctx context.Context, title, year string) ([]string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrMissingTitle
	}

	reqURL, err := omdb.SearchURL(s.baseURL, s.apiKey, title, year)
	if err != nil {
		return nil, fmt.Errorf("build search url: %w", err)
	}

	body, err := s.fetcher.FetchText(ctx, reqURL)
	if err != nil {
		// OMDb reports an exhausted key with a 401 and the usual JSON envelope.
		var se *httpclient.StatusError
		if errors.As(err, &se) && reportsRateLimit(se.Body) {
			return nil, s.rateLimited(title)
		}
		s.metrics.ObserveUpstream("search", "transport_error")
		return nil, fmt.Errorf("search %q: %w", title, err)
	}

	ids, err := omdb.ParseSearchIDs(body)
	if errors.Is(err, omdb.ErrRateLimitExceeded) {
		return nil, s.rateLimited(title)
	}
	if err != nil {
		s.metrics.ObserveUpstream("search", "parse_error")
		return nil, fmt.Errorf("search %q: %w", title, err)
	}

	s.metrics.ObserveUpstream("search", "ok")
	if ids == nil {
		return []string{}, nil
	}
	return ids, nil
}

func (s *Service) rateLimited(title string) error {
	s.metrics.ObserveUpstream("search", "rate_limited")
	s.metrics.ObserveRateLimit()
	s.logger.Warn("omdb request limit reached", slog.String("title", title))
	return omdb.ErrRateLimitExceeded
}

func reportsRateLimit(body string) bool {
	_, err := omdb.ParseSearchIDs(body)
	return errors.Is(err, omdb.ErrRateLimitExceeded)
}

// FetchDetails looks up every id concurrently and returns the details that
// succeeded, in input order. Failed lookups are dropped, not reported.
func (s *Service) FetchDetails(ctx context.Context, ids []string) []omdb.MovieDetail {
	// Fire every request before waiting on any of them.
	futures := make([]*httpclient.Future, len(ids))
	for i, id := range ids {
		reqURL, err := omdb.DetailsURL(s.baseURL, s.apiKey, id)
		if err != nil {
			futures[i] = httpclient.Completed("", fmt.Errorf("build details url: %w", err))
			continue
		}
		futures[i] = s.fetcher.FetchTextAsync(ctx, reqURL)
	}

	movies := make([]omdb.MovieDetail, 0, len(ids))
	for i, f := range futures {
		body, err := f.Wait()
		if err != nil {
			s.drop(ids[i], "transport", err)
			continue
		}

		movie, err := omdb.ParseDetail(body)
		if err != nil {
			s.drop(ids[i], dropReason(err), err)
			continue
		}
		s.metrics.ObserveUpstream("detail", "ok")
		movies = append(movies, movie)
	}
	return movies
}

func (s *Service) drop(id, reason string, err error) {
	s.metrics.ObserveUpstream("detail", reason)
	s.metrics.ObserveDropped(reason)
	s.logger.Warn("dropping movie detail",
		slog.String("imdb_id", id),
		slog.String("reason", reason),
		slog.String("error", err.Error()),
	)
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, omdb.ErrRateLimitExceeded):
		return "rate_limited"
	case errors.Is(err, omdb.ErrMalformedResponse):
		return "malformed"
	default:
		return "unavailable"
	}
}
