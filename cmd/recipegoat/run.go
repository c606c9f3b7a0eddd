package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/RecipeGoat/internal/config"
	"github.com/IshaanNene/RecipeGoat/internal/report"
	"github.com/IshaanNene/RecipeGoat/internal/runner"
)

// errRunFailed makes the command exit non-zero once the report is printed.
var errRunFailed = errors.New("run finished with errors")

func addFetcherFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&fetcherType, "fetcher", "", "page backend: browser or http")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "write the report as JSON to stdout")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any stage fails")
}

func addLinkFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&keyword, "keyword", "", "keyword to filter recipe links by (default from config)")
	cmd.Flags().IntVar(&indexPages, "index-pages", 0, "number of A-Z index pages to visit")
	cmd.Flags().IntVar(&maxClicks, "max-clicks", 0, "maximum load-more clicks on the listing")
}

// runCmd creates the "run" subcommand.
func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Collect, filter and extract in one session",
		Long: `Collect recipe links from the listing and the A-Z index, report the links
matching the keyword and extract the configured recipe's details. The browser
is closed exactly once however the run ends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, runner.FullPlan)
		},
	}
	addFetcherFlags(cmd)
	addLinkFlags(cmd)
	cmd.Flags().StringVar(&detailURL, "detail-url", "", "recipe page to extract (default from config)")
	return cmd
}

// linksCmd creates the "links" subcommand.
func linksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Collect and filter recipe links only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, func(*config.Config) runner.Plan {
				return runner.Plan{Listing: true, Index: true, Filter: true}
			})
		},
	}
	addFetcherFlags(cmd)
	addLinkFlags(cmd)
	return cmd
}

// detailCmd creates the "detail" subcommand.
func detailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detail [url]...",
		Short: "Extract author, ingredients and instructions from recipe pages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, rawURL := range args {
				if err := config.ValidateURL(rawURL); err != nil {
					return fmt.Errorf("invalid URL %q: %w", rawURL, err)
				}
			}
			return execute(cmd, func(*config.Config) runner.Plan {
				return runner.Plan{DetailURLs: args}
			})
		},
	}
	addFetcherFlags(cmd)
	return cmd
}

// execute runs the plan built from the effective config and prints the report.
func execute(cmd *cobra.Command, plan func(*config.Config) runner.Plan) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting run",
		"site", cfg.Site.Name,
		"fetcher", cfg.Fetcher.Type,
		"keyword", cfg.Filter.Keyword,
	)

	rep, runErr := runner.New(cfg, nil, logger).Run(ctx, plan(cfg))
	if rep == nil {
		return runErr
	}
	if runErr != nil {
		logger.Warn("run interrupted, reporting partial results", "error", runErr)
	}

	if err := writeReport(rep); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	if strict && rep.HasErrors() {
		return errRunFailed
	}
	return nil
}

func writeReport(rep *report.Report) error {
	if jsonOutput {
		return rep.WriteJSON(os.Stdout)
	}
	rep.Print(os.Stdout)
	return nil
}
