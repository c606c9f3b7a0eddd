package fetcher

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/IshaanNene/RecipeGoat/internal/config"
	"github.com/IshaanNene/RecipeGoat/internal/dom"
	"github.com/IshaanNene/RecipeGoat/internal/types"
)

// HTTPSession loads pages with a plain HTTP client. It does not run
// JavaScript, so it cannot click the load-more control.
type HTTPSession struct {
	client *http.Client
	page   *httpPage
	logger *slog.Logger

	closeOnce sync.Once
}

// NewHTTPSession creates an HTTP-backed session.
func NewHTTPSession(cfg *config.Config, logger *slog.Logger) *HTTPSession {
	logger = logger.With("component", "http_session")

	jar, _ := cookiejar.New(nil)
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableCompression:  true, // decompression (including brotli) is done by hand
	}
	client := &http.Client{
		Transport: transport,
		Jar:       jar,
		Timeout:   cfg.Fetcher.RequestTimeout,
	}

	return &HTTPSession{
		client: client,
		page: &httpPage{
			client:      client,
			userAgent:   cfg.Fetcher.UserAgent,
			maxBodySize: cfg.Fetcher.MaxBodySize,
			throttle:    newThrottle(cfg.Fetcher.PolitenessDelay),
			logger:      logger.With("component", "http_page"),
		},
		logger: logger,
	}
}

// Page returns the session's page.
func (s *HTTPSession) Page() Page { return s.page }

// Type returns the backend identifier.
func (s *HTTPSession) Type() string { return "http" }

// Close releases idle connections. Only the first call does any work.
func (s *HTTPSession) Close() error {
	s.closeOnce.Do(func() {
		s.client.CloseIdleConnections()
		s.page.closed = true
		s.logger.Info("http session closed")
	})
	return nil
}

// httpPage is a Page over the last fetched document.
type httpPage struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	throttle    *rate.Limiter
	logger      *slog.Logger

	url    string
	body   string
	root   *html.Node
	closed bool
}

func (p *httpPage) Navigate(ctx context.Context, url string) error {
	if p.closed {
		return &types.NavigationError{URL: url, Err: types.ErrSessionClosed}
	}
	if err := p.throttle.Wait(ctx); err != nil {
		return &types.NavigationError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &types.NavigationError{URL: url, Err: err}
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return &types.NavigationError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &types.NavigationError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	var reader io.Reader = resp.Body
	if p.maxBodySize > 0 {
		reader = io.LimitReader(reader, p.maxBodySize)
	}
	reader, err = decompressReader(resp, reader)
	if err != nil {
		return &types.NavigationError{URL: url, Err: err}
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return &types.NavigationError{URL: url, Err: err}
	}

	root, err := dom.Parse(string(body))
	if err != nil {
		return &types.NavigationError{URL: url, Err: err}
	}

	p.url = resp.Request.URL.String()
	p.body = string(body)
	p.root = root

	p.logger.Debug("fetched",
		"url", url,
		"final_url", p.url,
		"status", resp.StatusCode,
		"size", len(body),
		"duration", time.Since(start),
	)
	return nil
}

func (p *httpPage) URL() string { return p.url }

func (p *httpPage) HTML(ctx context.Context) (string, error) {
	return p.body, nil
}

// Visible reports presence only; without rendering there is no layout to consult.
func (p *httpPage) Visible(ctx context.Context, sel dom.Selector) (bool, error) {
	n, err := dom.Count(p.root, sel)
	return n > 0, err
}

func (p *httpPage) Click(ctx context.Context, sel dom.Selector) error {
	return &types.SelectorError{URL: p.url, Selector: sel.String(), Err: types.ErrInteractionUnsupported}
}

func (p *httpPage) Count(ctx context.Context, sel dom.Selector) (int, error) {
	return dom.Count(p.root, sel)
}

// decompressReader wraps a reader with the appropriate decompressor.
// Handles gzip, deflate, and brotli (br) encodings.
func decompressReader(resp *http.Response, reader io.Reader) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(reader)
	case "deflate":
		return flate.NewReader(reader), nil
	case "br":
		return brotli.NewReader(reader), nil
	default:
		return reader, nil
	}
}
