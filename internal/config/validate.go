package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/IshaanNene/RecipeGoat/internal/types"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if err := ValidateURL(cfg.Site.ListingURL); err != nil {
		return fmt.Errorf("site.listing_url: %w", err)
	}
	if !strings.Contains(cfg.Site.IndexURLTemplate, PagePlaceholder) {
		return fmt.Errorf("site.index_url_template must contain %s, got %q", PagePlaceholder, cfg.Site.IndexURLTemplate)
	}
	if err := ValidateURL(cfg.Site.IndexURL(1)); err != nil {
		return fmt.Errorf("site.index_url_template: %w", err)
	}
	if cfg.Site.IndexPages < 0 {
		return fmt.Errorf("site.index_pages must be >= 0, got %d", cfg.Site.IndexPages)
	}
	if cfg.Site.DetailURL != "" {
		if err := ValidateURL(cfg.Site.DetailURL); err != nil {
			return fmt.Errorf("site.detail_url: %w", err)
		}
	}

	named := cfg.Site.Selectors.named()
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := named[name].Validate(); err != nil {
			return fmt.Errorf("site.selectors.%s: %w", name, err)
		}
	}

	if strings.TrimSpace(cfg.Filter.Keyword) == "" {
		return fmt.Errorf("filter.keyword must not be empty")
	}

	if cfg.Fetcher.Type != "http" && cfg.Fetcher.Type != "browser" {
		return fmt.Errorf("fetcher.type must be 'http' or 'browser', got %q", cfg.Fetcher.Type)
	}
	if cfg.Fetcher.RequestTimeout <= 0 {
		return fmt.Errorf("fetcher.request_timeout must be > 0")
	}
	if cfg.Fetcher.PolitenessDelay < 0 {
		return fmt.Errorf("fetcher.politeness_delay must be >= 0")
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}

	if cfg.Pagination.MaxClicks < 1 {
		return fmt.Errorf("pagination.max_clicks must be >= 1, got %d", cfg.Pagination.MaxClicks)
	}
	if cfg.Pagination.SettleTimeout <= 0 {
		return fmt.Errorf("pagination.settle_timeout must be > 0")
	}
	if cfg.Pagination.PollInterval <= 0 || cfg.Pagination.PollInterval > cfg.Pagination.SettleTimeout {
		return fmt.Errorf("pagination.poll_interval must be > 0 and <= settle_timeout")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is valid for navigation.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got %q", types.ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", types.ErrInvalidURL)
	}
	return nil
}
