// Package scraper collects recipe links and recipe details from a single
// site described by config.SiteConfig.
package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/IshaanNene/RecipeGoat/internal/automation"
	"github.com/IshaanNene/RecipeGoat/internal/config"
	"github.com/IshaanNene/RecipeGoat/internal/dom"
	"github.com/IshaanNene/RecipeGoat/internal/fetcher"
	"github.com/IshaanNene/RecipeGoat/internal/observability"
	"github.com/IshaanNene/RecipeGoat/internal/types"
)

// Link sources reported in types.LinkResult.
const (
	SourceListing = "listing"
	SourceIndex   = "index"
)

// Scraper runs the collectors and the detail extractor over one page.
type Scraper struct {
	page     fetcher.Page
	site     config.SiteConfig
	loadMore automation.LoadMoreConfig
	stats    *observability.Stats
	logger   *slog.Logger
}

// New creates a Scraper that drives page using the site adapter in cfg.
func New(page fetcher.Page, cfg *config.Config, stats *observability.Stats, logger *slog.Logger) *Scraper {
	if stats == nil {
		stats = observability.NewStats()
	}
	return &Scraper{
		page:     page,
		site:     cfg.Site,
		loadMore: automation.NewLoadMoreConfig(cfg),
		stats:    stats,
		logger:   logger.With("component", "scraper", "site", cfg.Site.Name),
	}
}

func (s *Scraper) navigate(ctx context.Context, url string) error {
	s.stats.Navigations.Add(1)
	return s.page.Navigate(ctx, url)
}

// document parses the page's current markup.
func (s *Scraper) document(ctx context.Context) (*html.Node, error) {
	markup, err := s.page.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("read page html: %w", err)
	}
	return dom.Parse(markup)
}

// anchorHref finds sel under parent and returns its href resolved against
// the current page URL. An empty string means no usable anchor.
func (s *Scraper) anchorHref(parent *html.Node, sel dom.Selector) (string, error) {
	anchor, err := dom.First(parent, sel)
	if err != nil {
		return "", &types.SelectorError{URL: s.page.URL(), Selector: sel.String(), Err: err}
	}
	href, ok := dom.Attr(anchor, "href")
	if !ok || href == "" {
		return "", nil
	}
	return dom.ResolveURL(s.page.URL(), href)
}

// find wraps dom.Find with page context on error.
func (s *Scraper) find(root *html.Node, sel dom.Selector) ([]*html.Node, error) {
	nodes, err := dom.Find(root, sel)
	if err != nil {
		return nil, &types.SelectorError{URL: s.page.URL(), Selector: sel.String(), Err: err}
	}
	return nodes, nil
}

func (s *Scraper) addLink(res *types.LinkResult, link string) {
	res.Links = append(res.Links, link)
	s.stats.LinksFound.Add(1)
	s.logger.Info("recipe link", "source", res.Source, "url", link)
}
