package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vadimtrunov/MovieBuddy/internal/config"
	"github.com/vadimtrunov/MovieBuddy/internal/core"
	"github.com/vadimtrunov/MovieBuddy/internal/metadata/omdb"
	"github.com/vadimtrunov/MovieBuddy/internal/metrics"
	"github.com/vadimtrunov/MovieBuddy/internal/search"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const upstreamFailureMessage = "Movie search is temporarily unavailable, please try again later"

// Handler routes the web frontend.
type Handler struct {
	searcher core.MovieSearcher
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	root     http.Handler
}

// Option configures a Handler.
type Option func(*Handler)

// WithMetrics records request metrics into m and exposes g on /metrics.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(h *Handler) {
		h.metrics = m
		h.gatherer = g
	}
}

// NewHandler builds the routing table around searcher.
func NewHandler(searcher core.MovieSearcher, logger *slog.Logger, opts ...Option) *Handler {
	if searcher == nil {
		panic("web.NewHandler: searcher must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{searcher: searcher, logger: logger}
	for _, opt := range opts {
		opt(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /movies", h.movies)
	mux.HandleFunc("GET /api/movies", h.apiMovies)
	mux.HandleFunc("GET /health", healthHandler)
	if h.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
	h.root = requestLogger(h.logger, h.metrics, mux)
	return h
}

// ServeHTTP wraps the routes with request logging and metrics.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.root.ServeHTTP(w, r)
}

type formData struct {
	Title string
	Year  string
}

type resultsData struct {
	formData
	Movies []omdb.MovieDetail
}

type errorData struct {
	formData
	Status  int
	Message string
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "index", formData{})
}

func (h *Handler) movies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	form := formData{Title: q.Get("title"), Year: q.Get("releaseYear")}

	movies, err := h.search(r, form.Title, form.Year)
	if err != nil {
		status, msg := errorStatus(err)
		render(w, r, status, "error", errorData{formData: form, Status: status, Message: msg})
		return
	}
	render(w, r, http.StatusOK, "movies", resultsData{formData: form, Movies: movies})
}

type moviesResponse struct {
	Movies []omdb.MovieDetail `json:"movies"`
}

type errorResponse struct {
	StatusCode   int    `json:"status_code"`
	ErrorMessage string `json:"error"`
}

func (h *Handler) apiMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	movies, err := h.search(r, q.Get("title"), q.Get("year"))
	if err != nil {
		status, msg := errorStatus(err)
		respondWithJSON(w, r, status, errorResponse{StatusCode: status, ErrorMessage: msg})
		return
	}
	respondWithJSON(w, r, http.StatusOK, moviesResponse{Movies: movies})
}

func (h *Handler) search(r *http.Request, title, year string) ([]omdb.MovieDetail, error) {
	if strings.TrimSpace(title) == "" {
		return nil, search.ErrMissingTitle
	}
	movies, err := h.searcher.Search(r.Context(), title, strings.TrimSpace(year))
	if err != nil {
		config.LoggerFromContext(r.Context()).Error("search failed",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if movies == nil {
		movies = []omdb.MovieDetail{}
	}
	return movies, nil
}

// errorStatus maps a search error onto a status code and a user-facing message.
// Upstream details never reach the client.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, search.ErrMissingTitle):
		return http.StatusBadRequest, capitalize(search.ErrMissingTitle.Error())
	case errors.Is(err, omdb.ErrRateLimitExceeded):
		return http.StatusTooManyRequests, omdb.ErrRateLimitExceeded.Error()
	default:
		return http.StatusBadGateway, upstreamFailureMessage
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// render executes a page into a buffer so a template failure still yields a clean 500.
func render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		config.LoggerFromContext(r.Context()).Error("render page",
			slog.String("page", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func respondWithJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		config.LoggerFromContext(r.Context()).Error("encode response", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
