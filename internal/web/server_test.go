package web_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/vadimtrunov/MovieBuddy/internal/metadata/omdb"
	"github.com/vadimtrunov/MovieBuddy/internal/web"
)

func startServer(t *testing.T, srv *web.Server) (context.CancelFunc, <-chan error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case <-srv.Ready():
	case err := <-errCh:
		cancel()
		t.Fatalf("server failed to start: %v", err)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("server did not become ready within timeout")
	}
	return cancel, errCh
}

func TestServer_StartAndStop(t *testing.T) {
	t.Parallel()

	srv := web.NewServer(0, web.NewHandler(&mockSearcher{}, nil), nil) // port 0 = random
	cancel, errCh := startServer(t, srv)

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("server returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop within timeout")
	}
}

func TestServer_AddrBeforeStart(t *testing.T) {
	t.Parallel()

	srv := web.NewServer(0, web.NewHandler(&mockSearcher{}, nil), nil)
	if addr := srv.Addr(); addr != "" {
		t.Errorf("expected empty addr before start, got %q", addr)
	}
	if srv.Name() != "web" {
		t.Errorf("expected name 'web', got %q", srv.Name())
	}
}

func TestServer_DoubleStart(t *testing.T) {
	t.Parallel()

	srv := web.NewServer(0, web.NewHandler(&mockSearcher{}, nil), nil)
	cancel, _ := startServer(t, srv)
	defer cancel()

	if err := srv.Start(context.Background()); err == nil {
		t.Fatal("expected error on second Start")
	}
}

func TestServer_ServesRequests(t *testing.T) {
	t.Parallel()

	searcher := &mockSearcher{movies: []omdb.MovieDetail{casablanca()}}
	srv := web.NewServer(0, web.NewHandler(searcher, nil), nil)
	cancel, _ := startServer(t, srv)
	defer cancel()

	base := fmt.Sprintf("http://%s", srv.Addr())
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(base + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok\n" {
		t.Errorf("unexpected health response: %d %q", resp.StatusCode, body)
	}

	resp, err = client.Get(base + "/api/movies?title=Casablanca")
	if err != nil {
		t.Fatalf("api request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestNewServer_NilHandlerPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil handler")
		}
	}()
	web.NewServer(0, nil, nil)
}
