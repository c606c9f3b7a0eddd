package fetcher

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/andybalholm/brotli"

	"github.com/IshaanNene/RecipeGoat/internal/config"
	"github.com/IshaanNene/RecipeGoat/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const listingHTML = `<html><body>
<div class="card"><a href="/recipes/one">One</a></div>
<div class="card"><a href="/recipes/two">Two</a></div>
<button class="load-more">Load More</button>
</body></html>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/plain", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(listingHTML))
	})
	mux.HandleFunc("/brotli", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		bw := brotli.NewWriter(&buf)
		_, _ = bw.Write([]byte(listingHTML))
		_ = bw.Close()
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write(buf.Bytes())
	})
	mux.HandleFunc("/ua", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p class="ua">` + r.UserAgent() + `</p></body></html>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newHTTPTestSession() *HTTPSession {
	cfg := config.DefaultConfig()
	cfg.Fetcher.Type = "http"
	cfg.Fetcher.UserAgent = "RecipeGoat-Test"
	return NewHTTPSession(cfg, testLogger)
}

func TestHTTPPageNavigateAndQuery(t *testing.T) {
	srv := newTestServer(t)
	sess := newHTTPTestSession()
	defer sess.Close()

	ctx := context.Background()
	page := sess.Page()

	if err := page.Navigate(ctx, srv.URL+"/plain"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if page.URL() != srv.URL+"/plain" {
		t.Errorf("unexpected URL %q", page.URL())
	}

	n, err := page.Count(ctx, ".card")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 cards, got %d", n)
	}

	visible, err := page.Visible(ctx, ".load-more")
	if err != nil || !visible {
		t.Errorf("expected load-more present, got %v (err=%v)", visible, err)
	}

	body, _ := page.HTML(ctx)
	if len(body) == 0 {
		t.Error("expected HTML body")
	}
}

func TestHTTPPageBrotli(t *testing.T) {
	srv := newTestServer(t)
	sess := newHTTPTestSession()
	defer sess.Close()

	ctx := context.Background()
	if err := sess.Page().Navigate(ctx, srv.URL+"/brotli"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	n, _ := sess.Page().Count(ctx, ".card")
	if n != 2 {
		t.Errorf("expected 2 cards from brotli body, got %d", n)
	}
}

func TestHTTPPageUserAgent(t *testing.T) {
	srv := newTestServer(t)
	sess := newHTTPTestSession()
	defer sess.Close()

	ctx := context.Background()
	if err := sess.Page().Navigate(ctx, srv.URL+"/ua"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	n, _ := sess.Page().Count(ctx, "xpath://p[@class='ua' and text()='RecipeGoat-Test']")
	if n != 1 {
		t.Error("expected configured user agent to be sent")
	}
}

func TestHTTPPageNotFound(t *testing.T) {
	srv := newTestServer(t)
	sess := newHTTPTestSession()
	defer sess.Close()

	err := sess.Page().Navigate(context.Background(), srv.URL+"/missing")
	var navErr *types.NavigationError
	if !errors.As(err, &navErr) {
		t.Fatalf("expected NavigationError, got %v", err)
	}
	if navErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", navErr.StatusCode)
	}
}

func TestHTTPPageClickUnsupported(t *testing.T) {
	srv := newTestServer(t)
	sess := newHTTPTestSession()
	defer sess.Close()

	ctx := context.Background()
	_ = sess.Page().Navigate(ctx, srv.URL+"/plain")

	err := sess.Page().Click(ctx, ".load-more")
	if !errors.Is(err, types.ErrInteractionUnsupported) {
		t.Errorf("expected ErrInteractionUnsupported, got %v", err)
	}
}

func TestHTTPSessionCloseIdempotent(t *testing.T) {
	srv := newTestServer(t)
	sess := newHTTPTestSession()

	if err := sess.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	err := sess.Page().Navigate(context.Background(), srv.URL+"/plain")
	if !errors.Is(err, types.ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed after close, got %v", err)
	}
}

func TestOpenRejectsUnknownType(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Fetcher.Type = "carrier-pigeon"
	if _, err := Open(context.Background(), cfg, testLogger); err == nil {
		t.Error("expected error for unknown fetcher type")
	}
}
