// Package automation drives interactive page controls.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/IshaanNene/RecipeGoat/internal/config"
	"github.com/IshaanNene/RecipeGoat/internal/dom"
	"github.com/IshaanNene/RecipeGoat/internal/fetcher"
	"github.com/IshaanNene/RecipeGoat/internal/types"
)

// LoadMoreConfig configures load-more expansion.
type LoadMoreConfig struct {
	// Control is the "load more" button.
	Control dom.Selector
	// Items counts the listing entries; growth means a click took effect.
	Items dom.Selector
	// MaxClicks caps the number of clicks.
	MaxClicks int
	// SettleTimeout bounds the wait after each click.
	SettleTimeout time.Duration
	// PollInterval is the delay between condition checks.
	PollInterval time.Duration
}

// NewLoadMoreConfig builds a LoadMoreConfig from the site and pagination settings.
func NewLoadMoreConfig(cfg *config.Config) LoadMoreConfig {
	return LoadMoreConfig{
		Control:       cfg.Site.Selectors.LoadMore,
		Items:         cfg.Site.Selectors.Card,
		MaxClicks:     cfg.Pagination.MaxClicks,
		SettleTimeout: cfg.Pagination.SettleTimeout,
		PollInterval:  cfg.Pagination.PollInterval,
	}
}

// LoadStats summarizes one expansion.
type LoadStats struct {
	Clicks int
	Items  int
	Capped bool
}

// LoadMore expands a listing by clicking its load-more control until the
// control disappears, a click yields no new items within SettleTimeout, or
// MaxClicks is reached. Reaching MaxClicks returns types.ErrLoadMoreCapped.
// Visibility and click failures are returned as-is.
type LoadMore struct {
	page   fetcher.Page
	cfg    LoadMoreConfig
	logger *slog.Logger
}

// NewLoadMore wraps page with the load-more driver.
func NewLoadMore(page fetcher.Page, cfg LoadMoreConfig, logger *slog.Logger) *LoadMore {
	return &LoadMore{
		page:   page,
		cfg:    cfg,
		logger: logger.With("component", "load_more"),
	}
}

// Expand runs the click loop on the currently loaded document.
func (lm *LoadMore) Expand(ctx context.Context) (LoadStats, error) {
	var stats LoadStats

	items, err := lm.page.Count(ctx, lm.cfg.Items)
	if err != nil {
		return stats, fmt.Errorf("count items: %w", err)
	}
	stats.Items = items

	for {
		visible, err := lm.page.Visible(ctx, lm.cfg.Control)
		if err != nil {
			return stats, fmt.Errorf("check load-more: %w", err)
		}
		if !visible {
			lm.logger.Debug("load-more exhausted", "clicks", stats.Clicks, "items", stats.Items)
			return stats, nil
		}

		if stats.Clicks >= lm.cfg.MaxClicks {
			stats.Capped = true
			lm.logger.Warn("load-more click limit reached", "max_clicks", lm.cfg.MaxClicks, "items", stats.Items)
			return stats, types.ErrLoadMoreCapped
		}

		if err := lm.page.Click(ctx, lm.cfg.Control); err != nil {
			return stats, fmt.Errorf("click load-more: %w", err)
		}
		stats.Clicks++

		grown, count, err := lm.waitForGrowth(ctx, stats.Items)
		if err != nil {
			return stats, err
		}
		stats.Items = count
		if !grown {
			lm.logger.Warn("no new items after load-more click, stopping",
				"clicks", stats.Clicks,
				"items", stats.Items,
				"waited", lm.cfg.SettleTimeout,
			)
			return stats, nil
		}

		lm.logger.Debug("load-more click", "clicks", stats.Clicks, "items", stats.Items)
	}
}

// waitForGrowth polls until the item count exceeds before or the control
// disappears. It reports false when SettleTimeout elapses with neither.
func (lm *LoadMore) waitForGrowth(ctx context.Context, before int) (bool, int, error) {
	deadline := time.Now().Add(lm.cfg.SettleTimeout)
	ticker := time.NewTicker(lm.cfg.PollInterval)
	defer ticker.Stop()

	count := before
	for {
		n, err := lm.page.Count(ctx, lm.cfg.Items)
		if err != nil {
			return false, count, fmt.Errorf("count items: %w", err)
		}
		count = n
		if count > before {
			return true, count, nil
		}

		visible, err := lm.page.Visible(ctx, lm.cfg.Control)
		if err != nil {
			return false, count, fmt.Errorf("check load-more: %w", err)
		}
		if !visible {
			return true, count, nil
		}

		if time.Now().After(deadline) {
			return false, count, nil
		}

		select {
		case <-ctx.Done():
			return false, count, ctx.Err()
		case <-ticker.C:
		}
	}
}
