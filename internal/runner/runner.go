// Package runner sequences a scrape run: collect listing links, collect index
// links, filter them by keyword and extract recipe details, all over one
// session that is closed exactly once however the run ends.
package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IshaanNene/RecipeGoat/internal/config"
	"github.com/IshaanNene/RecipeGoat/internal/fetcher"
	"github.com/IshaanNene/RecipeGoat/internal/observability"
	"github.com/IshaanNene/RecipeGoat/internal/report"
	"github.com/IshaanNene/RecipeGoat/internal/scraper"
)

// Opener starts the session a run works in.
type Opener func(ctx context.Context) (fetcher.Session, error)

// Plan selects the stages of a run.
type Plan struct {
	Listing    bool
	Index      bool
	Filter     bool
	DetailURLs []string
}

// FullPlan runs every stage and extracts the configured detail URL.
// The detail URL is fixed by configuration, not chosen from the filter matches.
func FullPlan(cfg *config.Config) Plan {
	plan := Plan{Listing: true, Index: true, Filter: true}
	if cfg.Site.DetailURL != "" {
		plan.DetailURLs = []string{cfg.Site.DetailURL}
	}
	return plan
}

// Runner executes plans against one site.
type Runner struct {
	cfg    *config.Config
	open   Opener
	logger *slog.Logger
}

// New creates a Runner. A nil open uses fetcher.Open with cfg.
func New(cfg *config.Config, open Opener, logger *slog.Logger) *Runner {
	if open == nil {
		open = func(ctx context.Context) (fetcher.Session, error) {
			return fetcher.Open(ctx, cfg, logger)
		}
	}
	return &Runner{
		cfg:    cfg,
		open:   open,
		logger: logger.With("component", "runner"),
	}
}

// Run executes plan. Stage failures are recorded in the report rather than
// returned; the error is non-nil only when the session cannot be opened or
// ctx is cancelled.
func (r *Runner) Run(ctx context.Context, plan Plan) (*report.Report, error) {
	sess, err := r.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	stats := observability.NewStats()
	rep := report.New(r.cfg.Site.Name, sess.Type())
	defer func() {
		if err := sess.Close(); err != nil {
			r.logger.Error("session close failed", "error", err)
			rep.AddError(report.StageClose, "", err)
		}
		rep.Stats = stats.Snapshot()
		rep.Finish()
	}()

	r.logger.Info("run started",
		"site", r.cfg.Site.Name,
		"fetcher", sess.Type(),
		"listing", plan.Listing,
		"index", plan.Index,
		"details", len(plan.DetailURLs),
	)

	s := scraper.New(sess.Page(), r.cfg, stats, r.logger)

	if plan.Listing {
		rep.AddLinks(s.CollectListing(ctx))
	}
	if plan.Index && ctx.Err() == nil {
		rep.AddLinks(s.CollectIndex(ctx))
	}
	if plan.Filter {
		rep.Keyword = r.cfg.Filter.Keyword
		if matches := s.Filter(rep.AllLinks(), rep.Keyword); matches != nil {
			rep.Matches = matches
		}
	}
	for _, u := range plan.DetailURLs {
		if ctx.Err() != nil {
			break
		}
		rep.AddDetail(s.ExtractDetail(ctx, u))
	}

	if err := ctx.Err(); err != nil {
		r.logger.Warn("run cancelled", "error", err)
		return rep, err
	}

	r.logger.Info("run finished",
		"listing_links", len(rep.ListingLinks),
		"index_links", len(rep.IndexLinks),
		"matches", len(rep.Matches),
		"errors", len(rep.Errors),
	)
	return rep, nil
}
