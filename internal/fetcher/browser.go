package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"golang.org/x/time/rate"

	"github.com/IshaanNene/RecipeGoat/internal/config"
	"github.com/IshaanNene/RecipeGoat/internal/dom"
	"github.com/IshaanNene/RecipeGoat/internal/types"
)

// BrowserSession drives one headless Chromium tab via Rod.
type BrowserSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rodPage
	logger   *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// NewBrowserSession launches a browser and opens a single page in it.
func NewBrowserSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*BrowserSession, error) {
	logger = logger.With("component", "browser_session")

	l := launcher.New().
		Context(ctx).
		Headless(cfg.Browser.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled")
	if cfg.Browser.Bin != "" {
		l = l.Bin(cfg.Browser.Bin)
	}
	if cfg.Browser.WindowSize != "" {
		l = l.Set("window-size", cfg.Browser.WindowSize)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	var page *rod.Page
	if cfg.Browser.Stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		_ = browser.Close()
		l.Cleanup()
		return nil, fmt.Errorf("open page: %w", err)
	}

	if cfg.Fetcher.UserAgent != "" {
		err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: cfg.Fetcher.UserAgent})
		if err != nil {
			logger.Warn("failed to set user agent", "error", err)
		}
	}

	logger.Info("browser session ready",
		"headless", cfg.Browser.Headless,
		"stealth", cfg.Browser.Stealth,
	)

	return &BrowserSession{
		launcher: l,
		browser:  browser,
		page: &rodPage{
			page:     page,
			timeout:  cfg.Fetcher.RequestTimeout,
			throttle: newThrottle(cfg.Fetcher.PolitenessDelay),
			logger:   logger.With("component", "rod_page"),
		},
		logger: logger,
	}, nil
}

// Page returns the session's tab.
func (s *BrowserSession) Page() Page { return s.page }

// Type returns the backend identifier.
func (s *BrowserSession) Type() string { return "browser" }

// Close shuts the browser down. Only the first call does any work.
func (s *BrowserSession) Close() error {
	s.closeOnce.Do(func() {
		if err := s.page.page.Close(); err != nil {
			s.logger.Debug("page close failed", "error", err)
		}
		s.closeErr = s.browser.Close()
		s.launcher.Cleanup()
		s.logger.Info("browser closed")
	})
	return s.closeErr
}

// rodPage adapts a *rod.Page to Page.
type rodPage struct {
	page     *rod.Page
	timeout  time.Duration
	throttle *rate.Limiter
	lastURL  string
	logger   *slog.Logger
}

// bound returns a page handle tied to ctx and the request timeout.
// Callers must call CancelTimeout on the result.
func (p *rodPage) bound(ctx context.Context) *rod.Page {
	return p.page.Context(ctx).Timeout(p.timeout)
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	if err := p.throttle.Wait(ctx); err != nil {
		return &types.NavigationError{URL: url, Err: err}
	}

	pg := p.bound(ctx)
	defer pg.CancelTimeout()

	start := time.Now()
	if err := pg.Navigate(url); err != nil {
		return &types.NavigationError{URL: url, Err: err}
	}
	if err := pg.WaitLoad(); err != nil {
		return &types.NavigationError{URL: url, Err: fmt.Errorf("wait load: %w", err)}
	}
	p.lastURL = url

	p.logger.Debug("navigated", "url", url, "duration", time.Since(start))
	return nil
}

func (p *rodPage) URL() string {
	info, err := p.page.Info()
	if err != nil || info == nil || info.URL == "" {
		return p.lastURL
	}
	return info.URL
}

func (p *rodPage) HTML(ctx context.Context) (string, error) {
	pg := p.bound(ctx)
	defer pg.CancelTimeout()
	return pg.HTML()
}

func (p *rodPage) Visible(ctx context.Context, sel dom.Selector) (bool, error) {
	pg := p.bound(ctx)
	defer pg.CancelTimeout()

	found, el, err := has(pg, sel)
	if err != nil || !found {
		return false, err
	}
	return el.Visible()
}

func (p *rodPage) Click(ctx context.Context, sel dom.Selector) error {
	pg := p.bound(ctx)
	defer pg.CancelTimeout()

	found, el, err := has(pg, sel)
	if err != nil {
		return err
	}
	if !found {
		return &types.SelectorError{URL: p.lastURL, Selector: sel.String(), Err: types.ErrSelectorMiss}
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (p *rodPage) Count(ctx context.Context, sel dom.Selector) (int, error) {
	pg := p.bound(ctx)
	defer pg.CancelTimeout()

	var (
		els rod.Elements
		err error
	)
	if sel.IsXPath() {
		els, err = pg.ElementsX(sel.Expr())
	} else {
		els, err = pg.Elements(sel.Expr())
	}
	if err != nil {
		return 0, err
	}
	return len(els), nil
}

// has looks sel up without waiting for it to appear.
func has(pg *rod.Page, sel dom.Selector) (bool, *rod.Element, error) {
	if sel.IsXPath() {
		return pg.HasX(sel.Expr())
	}
	return pg.Has(sel.Expr())
}
