package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/IshaanNene/RecipeGoat/internal/dom"
)

// Version is set at build time via ldflags.
var Version = "dev"

// PagePlaceholder is replaced by the page number in SiteConfig.IndexURLTemplate.
const PagePlaceholder = "{page}"

// Config is the root configuration for RecipeGoat.
type Config struct {
	Site       SiteConfig       `mapstructure:"site"       yaml:"site"`
	Filter     FilterConfig     `mapstructure:"filter"     yaml:"filter"`
	Fetcher    FetcherConfig    `mapstructure:"fetcher"    yaml:"fetcher"`
	Browser    BrowserConfig    `mapstructure:"browser"    yaml:"browser"`
	Pagination PaginationConfig `mapstructure:"pagination" yaml:"pagination"`
	Logging    LoggingConfig    `mapstructure:"logging"    yaml:"logging"`
}

// SiteConfig is the declarative adapter for the scraped site: where to go and
// what to look for once there.
type SiteConfig struct {
	Name             string         `mapstructure:"name"               yaml:"name"`
	ListingURL       string         `mapstructure:"listing_url"        yaml:"listing_url"`
	IndexURLTemplate string         `mapstructure:"index_url_template" yaml:"index_url_template"`
	IndexPages       int            `mapstructure:"index_pages"        yaml:"index_pages"`
	DetailURL        string         `mapstructure:"detail_url"         yaml:"detail_url"`
	Selectors        SelectorConfig `mapstructure:"selectors"          yaml:"selectors"`
}

// IndexURL returns the A-Z index URL for the given page number.
func (s SiteConfig) IndexURL(page int) string {
	return strings.ReplaceAll(s.IndexURLTemplate, PagePlaceholder, strconv.Itoa(page))
}

// SelectorConfig holds every DOM selector the scraper depends on.
type SelectorConfig struct {
	LoadMore        dom.Selector `mapstructure:"load_more"        yaml:"load_more"`
	Card            dom.Selector `mapstructure:"card"             yaml:"card"`
	CardTextWrap    dom.Selector `mapstructure:"card_text_wrap"   yaml:"card_text_wrap"`
	CardLink        dom.Selector `mapstructure:"card_link"        yaml:"card_link"`
	IndexItem       dom.Selector `mapstructure:"index_item"       yaml:"index_item"`
	IndexLink       dom.Selector `mapstructure:"index_link"       yaml:"index_link"`
	Author          dom.Selector `mapstructure:"author"           yaml:"author"`
	AuthorLink      dom.Selector `mapstructure:"author_link"      yaml:"author_link"`
	Ingredient      dom.Selector `mapstructure:"ingredient"       yaml:"ingredient"`
	IngredientLabel dom.Selector `mapstructure:"ingredient_label" yaml:"ingredient_label"`
	Instruction     dom.Selector `mapstructure:"instruction"      yaml:"instruction"`
}

// named returns the selectors keyed by their config name.
func (s SelectorConfig) named() map[string]dom.Selector {
	return map[string]dom.Selector{
		"load_more":        s.LoadMore,
		"card":             s.Card,
		"card_text_wrap":   s.CardTextWrap,
		"card_link":        s.CardLink,
		"index_item":       s.IndexItem,
		"index_link":       s.IndexLink,
		"author":           s.Author,
		"author_link":      s.AuthorLink,
		"ingredient":       s.Ingredient,
		"ingredient_label": s.IngredientLabel,
		"instruction":      s.Instruction,
	}
}

// FilterConfig controls the keyword filter.
type FilterConfig struct {
	Keyword string `mapstructure:"keyword" yaml:"keyword"`
}

// FetcherConfig controls how pages are loaded.
type FetcherConfig struct {
	Type            string        `mapstructure:"type"             yaml:"type"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"  yaml:"request_timeout"`
	PolitenessDelay time.Duration `mapstructure:"politeness_delay" yaml:"politeness_delay"`
	UserAgent       string        `mapstructure:"user_agent"       yaml:"user_agent"`
	MaxBodySize     int64         `mapstructure:"max_body_size"    yaml:"max_body_size"`
}

// BrowserConfig controls the headless browser.
type BrowserConfig struct {
	Headless   bool   `mapstructure:"headless"    yaml:"headless"`
	Stealth    bool   `mapstructure:"stealth"     yaml:"stealth"`
	Bin        string `mapstructure:"bin"         yaml:"bin"`
	WindowSize string `mapstructure:"window_size" yaml:"window_size"`
}

// PaginationConfig bounds the load-more expansion.
type PaginationConfig struct {
	MaxClicks     int           `mapstructure:"max_clicks"     yaml:"max_clicks"`
	SettleTimeout time.Duration `mapstructure:"settle_timeout" yaml:"settle_timeout"`
	PollInterval  time.Duration `mapstructure:"poll_interval"  yaml:"poll_interval"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config targeting the Food Network recipe site.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Name:             "foodnetwork",
			ListingURL:       "https://www.foodnetwork.com/recipes",
			IndexURLTemplate: "https://www.foodnetwork.com/recipes/recipes-a-z/s/p/" + PagePlaceholder,
			IndexPages:       5,
			DetailURL:        "https://www.foodnetwork.com/recipes/michael-chiarello/super-tuscan-white-bean-soup-recipe-1947697",
			Selectors: SelectorConfig{
				LoadMore:        ".o-Button--load-more",
				Card:            ".o-Capsule__m-MediaBlock.m-MediaBlock",
				CardTextWrap:    ".m-MediaBlock__m-TextWrap",
				CardLink:        "a",
				IndexItem:       ".m-PromoList__a-ListItem",
				IndexLink:       "a",
				Author:          ".o-Attribution__a-Name",
				AuthorLink:      "a",
				Ingredient:      ".o-Ingredients__a-Ingredient",
				IngredientLabel: ".o-Ingredients__a-Ingredient--CheckboxLabel",
				Instruction:     ".o-Method__m-Step",
			},
		},
		Filter: FilterConfig{
			Keyword: "soup",
		},
		Fetcher: FetcherConfig{
			Type:            "browser",
			RequestTimeout:  30 * time.Second,
			PolitenessDelay: 0,
			UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			MaxBodySize:     10 * 1024 * 1024, // 10MB
		},
		Browser: BrowserConfig{
			Headless:   true,
			WindowSize: "1920,1080",
		},
		Pagination: PaginationConfig{
			MaxClicks:     50,
			SettleTimeout: 10 * time.Second,
			PollInterval:  250 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
