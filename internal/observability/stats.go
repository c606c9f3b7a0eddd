package observability

import (
	"sync/atomic"
)

// Stats tracks operational counters for one scrape run.
type Stats struct {
	Navigations  atomic.Int64
	Clicks       atomic.Int64
	LinksFound   atomic.Int64
	CardsSkipped atomic.Int64
	Ingredients  atomic.Int64
	Instructions atomic.Int64
	Errors       atomic.Int64
}

// NewStats creates a zeroed Stats.
func NewStats() *Stats {
	return &Stats{}
}

// Snapshot returns all counters as a map.
func (s *Stats) Snapshot() map[string]int64 {
	return map[string]int64{
		"navigations":   s.Navigations.Load(),
		"clicks":        s.Clicks.Load(),
		"links_found":   s.LinksFound.Load(),
		"cards_skipped": s.CardsSkipped.Load(),
		"ingredients":   s.Ingredients.Load(),
		"instructions":  s.Instructions.Load(),
		"errors":        s.Errors.Load(),
	}
}
