package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/IshaanNene/RecipeGoat/internal/config"
	"github.com/IshaanNene/RecipeGoat/internal/dom"
)

// Page is a single tab that is navigated and queried in sequence.
// A Page is never shared between goroutines.
type Page interface {
	// Navigate loads url and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error

	// URL returns the address of the currently loaded document.
	URL() string

	// HTML returns the current document markup.
	HTML(ctx context.Context) (string, error)

	// Visible reports whether an element matching sel is present and visible.
	Visible(ctx context.Context, sel dom.Selector) (bool, error)

	// Click activates the first element matching sel.
	Click(ctx context.Context, sel dom.Selector) error

	// Count returns the number of elements matching sel.
	Count(ctx context.Context, sel dom.Selector) (int, error)
}

// Session owns the resources behind one Page.
type Session interface {
	// Page returns the session's tab.
	Page() Page

	// Close releases the session. Calling it more than once is safe.
	Close() error

	// Type returns the backend identifier.
	Type() string
}

// Open starts a session using the backend named by cfg.Fetcher.Type.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Session, error) {
	switch cfg.Fetcher.Type {
	case "browser":
		return NewBrowserSession(ctx, cfg, logger)
	case "http":
		return NewHTTPSession(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported fetcher type: %s", cfg.Fetcher.Type)
	}
}

// newThrottle returns a limiter that spaces navigations by delay.
// A zero delay disables throttling.
func newThrottle(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
