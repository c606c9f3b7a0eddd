// Package report aggregates the outcome of a scrape run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/IshaanNene/RecipeGoat/internal/types"
)

// Stages named in StageError.
const (
	StageSession = "session"
	StageListing = "listing"
	StageIndex   = "index"
	StageDetail  = "detail"
	StageClose   = "close"
)

// StageError records a failure and the stage it happened in.
type StageError struct {
	Stage   string `json:"stage"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message"`
}

// Report is the result of one run.
type Report struct {
	Site         string                `json:"site"`
	Fetcher      string                `json:"fetcher"`
	ListingLinks []string              `json:"listing_links"`
	IndexLinks   []string              `json:"index_links"`
	IndexPages   int                   `json:"index_pages"`
	Keyword      string                `json:"keyword"`
	Matches      []string              `json:"matches"`
	Details      []*types.RecipeDetail `json:"details"`
	Errors       []StageError          `json:"errors"`
	Stats        map[string]int64      `json:"stats"`
	StartedAt    time.Time             `json:"started_at"`
	Duration     time.Duration         `json:"duration_ns"`
}

// New creates an empty report for site.
func New(site, fetcher string) *Report {
	return &Report{
		Site:         site,
		Fetcher:      fetcher,
		ListingLinks: []string{},
		IndexLinks:   []string{},
		Matches:      []string{},
		Details:      []*types.RecipeDetail{},
		Errors:       []StageError{},
		StartedAt:    time.Now(),
	}
}

// AddError records err against stage. A nil err is ignored.
func (r *Report) AddError(stage, url string, err error) {
	if err == nil {
		return
	}
	r.Errors = append(r.Errors, StageError{Stage: stage, URL: url, Message: err.Error()})
}

// AddLinks records a collector's result, including its error if any.
func (r *Report) AddLinks(res types.LinkResult) {
	switch res.Source {
	case StageListing:
		r.ListingLinks = append(r.ListingLinks, res.Links...)
	case StageIndex:
		r.IndexLinks = append(r.IndexLinks, res.Links...)
		r.IndexPages += res.Pages
	}
	r.AddError(res.Source, "", res.Err)
}

// AddDetail records a detail extraction.
func (r *Report) AddDetail(res types.DetailResult) {
	if res.Detail != nil {
		r.Details = append(r.Details, res.Detail)
	}
	r.AddError(StageDetail, res.URL, res.Err)
}

// AllLinks returns listing links followed by index links.
func (r *Report) AllLinks() []string {
	all := make([]string, 0, len(r.ListingLinks)+len(r.IndexLinks))
	all = append(all, r.ListingLinks...)
	return append(all, r.IndexLinks...)
}

// HasErrors reports whether any stage failed.
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// Finish stamps the run duration.
func (r *Report) Finish() {
	r.Duration = time.Since(r.StartedAt)
}

// Print writes a human-readable summary.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "\nRun complete in %s (%s, %s)\n", r.Duration.Round(time.Millisecond), r.Site, r.Fetcher)
	fmt.Fprintf(w, "   Listing links:  %d\n", len(r.ListingLinks))
	fmt.Fprintf(w, "   Index links:    %d (%d pages)\n", len(r.IndexLinks), r.IndexPages)
	fmt.Fprintf(w, "   Total links:    %d\n", len(r.ListingLinks)+len(r.IndexLinks))
	if r.Keyword != "" {
		fmt.Fprintf(w, "   Matching %q: %d\n", r.Keyword, len(r.Matches))
		for _, m := range r.Matches {
			fmt.Fprintf(w, "     - %s\n", m)
		}
	}

	for _, d := range r.Details {
		fmt.Fprintf(w, "\nRecipe: %s\n", d.URL)
		fmt.Fprintf(w, "   Author: %s\n", d.Author)
		fmt.Fprintf(w, "   Ingredients (%d):\n", len(d.Ingredients))
		for _, ing := range d.Ingredients {
			fmt.Fprintf(w, "     - %s\n", ing)
		}
		fmt.Fprintf(w, "   Instructions (%d):\n", len(d.Instructions))
		for i, step := range d.Instructions {
			fmt.Fprintf(w, "     %d. %s\n", i+1, step)
		}
	}

	if r.HasErrors() {
		fmt.Fprintf(w, "\nErrors (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			if e.URL != "" {
				fmt.Fprintf(w, "   [%s] %s: %s\n", e.Stage, e.URL, e.Message)
			} else {
				fmt.Fprintf(w, "   [%s] %s\n", e.Stage, e.Message)
			}
		}
	}
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
