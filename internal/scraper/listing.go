package scraper

import (
	"context"
	"errors"
	"fmt"

	"github.com/IshaanNene/RecipeGoat/internal/automation"
	"github.com/IshaanNene/RecipeGoat/internal/types"
)

// CollectListing gathers recipe links from the fully expanded listing page.
// Cards without a text-wrap or anchor are skipped. On failure the links
// gathered so far are returned along with the error.
func (s *Scraper) CollectListing(ctx context.Context) types.LinkResult {
	res := types.LinkResult{Source: SourceListing}

	if err := s.collectListing(ctx, &res); err != nil {
		res.Err = err
		s.stats.Errors.Add(1)
		s.logger.Error("listing collection failed", "error", err, "partial", len(res.Links))
	}

	s.logger.Info("total recipes from listing", "count", len(res.Links))
	return res
}

func (s *Scraper) collectListing(ctx context.Context, res *types.LinkResult) error {
	if err := s.navigate(ctx, s.site.ListingURL); err != nil {
		return err
	}
	res.Pages = 1

	stats, err := automation.NewLoadMore(s.page, s.loadMore, s.logger).Expand(ctx)
	s.stats.Clicks.Add(int64(stats.Clicks))
	switch {
	case err == nil:
	case errors.Is(err, types.ErrLoadMoreCapped), errors.Is(err, types.ErrInteractionUnsupported):
		s.logger.Warn("listing only partially expanded", "clicks", stats.Clicks, "reason", err)
	default:
		return fmt.Errorf("expand listing: %w", err)
	}

	root, err := s.document(ctx)
	if err != nil {
		return err
	}

	sel := s.site.Selectors
	cards, err := s.find(root, sel.Card)
	if err != nil {
		return err
	}

	for i, card := range cards {
		wraps, err := s.find(card, sel.CardTextWrap)
		if err != nil {
			return err
		}
		if len(wraps) == 0 {
			s.stats.CardsSkipped.Add(1)
			s.logger.Debug("card without text wrap skipped", "index", i)
			continue
		}

		link, err := s.anchorHref(wraps[0], sel.CardLink)
		if err != nil {
			return err
		}
		if link == "" {
			s.stats.CardsSkipped.Add(1)
			s.logger.Debug("card without link skipped", "index", i)
			continue
		}
		s.addLink(res, link)
	}

	return nil
}
