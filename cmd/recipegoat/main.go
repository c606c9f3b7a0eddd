package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/RecipeGoat/internal/config"
)

var (
	cfgFile     string
	verbose     bool
	fetcherType string
	keyword     string
	detailURL   string
	indexPages  int
	maxClicks   int
	jsonOutput  bool
	strict      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "recipegoat",
		Short: "Food Network recipe scraper",
		Long: `RecipeGoat drives a headless browser over the Food Network recipe site.

It expands the recipe listing, collects recipe links from the listing and the
A-Z index, reports the links matching a keyword and extracts a recipe's
author, ingredients and instructions.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(linksCmd())
	rootCmd.AddCommand(detailCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("RecipeGoat %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			sel := cfg.Site.Selectors
			fmt.Printf("Site:\n")
			fmt.Printf("  Name:              %s\n", cfg.Site.Name)
			fmt.Printf("  Listing URL:       %s\n", cfg.Site.ListingURL)
			fmt.Printf("  Index template:    %s\n", cfg.Site.IndexURLTemplate)
			fmt.Printf("  Index pages:       %d\n", cfg.Site.IndexPages)
			fmt.Printf("  Detail URL:        %s\n", cfg.Site.DetailURL)
			fmt.Printf("\nSelectors:\n")
			fmt.Printf("  Load more:         %s\n", sel.LoadMore)
			fmt.Printf("  Card:              %s > %s > %s\n", sel.Card, sel.CardTextWrap, sel.CardLink)
			fmt.Printf("  Index item:        %s > %s\n", sel.IndexItem, sel.IndexLink)
			fmt.Printf("  Author:            %s > %s\n", sel.Author, sel.AuthorLink)
			fmt.Printf("  Ingredient:        %s > %s\n", sel.Ingredient, sel.IngredientLabel)
			fmt.Printf("  Instruction:       %s\n", sel.Instruction)
			fmt.Printf("\nFilter:\n")
			fmt.Printf("  Keyword:           %q\n", cfg.Filter.Keyword)
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Type:              %s\n", cfg.Fetcher.Type)
			fmt.Printf("  Request Timeout:   %s\n", cfg.Fetcher.RequestTimeout)
			fmt.Printf("  Politeness Delay:  %s\n", cfg.Fetcher.PolitenessDelay)
			fmt.Printf("  Max Body Size:     %d bytes\n", cfg.Fetcher.MaxBodySize)
			fmt.Printf("\nBrowser:\n")
			fmt.Printf("  Headless:          %v\n", cfg.Browser.Headless)
			fmt.Printf("  Stealth:           %v\n", cfg.Browser.Stealth)
			fmt.Printf("  Window Size:       %s\n", cfg.Browser.WindowSize)
			fmt.Printf("\nPagination:\n")
			fmt.Printf("  Max Clicks:        %d\n", cfg.Pagination.MaxClicks)
			fmt.Printf("  Settle Timeout:    %s\n", cfg.Pagination.SettleTimeout)
			fmt.Printf("  Poll Interval:     %s\n", cfg.Pagination.PollInterval)
			return nil
		},
	}
}

// setupLogger creates a structured logger from the logging config.
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// loadConfig loads, overrides and validates the configuration.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	applyCLIOverrides(cmd, cfg)

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyCLIOverrides applies command-line flag values to the config. Only
// flags the user actually set override file and environment values.
func applyCLIOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("fetcher") {
		cfg.Fetcher.Type = strings.ToLower(fetcherType)
	}
	if flags.Changed("keyword") {
		cfg.Filter.Keyword = keyword
	}
	if flags.Changed("detail-url") {
		cfg.Site.DetailURL = detailURL
	}
	if flags.Changed("index-pages") {
		cfg.Site.IndexPages = indexPages
	}
	if flags.Changed("max-clicks") {
		cfg.Pagination.MaxClicks = maxClicks
	}
}
