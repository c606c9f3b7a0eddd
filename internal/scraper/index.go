package scraper

import (
	"context"
	"fmt"

	"github.com/IshaanNene/RecipeGoat/internal/types"
)

// CollectIndex walks the A-Z index pages 1..IndexPages in ascending order and
// gathers every list item's link. The first failing page stops the walk; links
// from earlier pages are kept.
func (s *Scraper) CollectIndex(ctx context.Context) types.LinkResult {
	res := types.LinkResult{Source: SourceIndex}

	for page := 1; page <= s.site.IndexPages; page++ {
		n, err := s.collectIndexPage(ctx, page, &res)
		if err != nil {
			res.Err = fmt.Errorf("index page %d: %w", page, err)
			s.stats.Errors.Add(1)
			s.logger.Error("index collection failed", "page", page, "error", err, "partial", len(res.Links))
			break
		}
		res.Pages++
		s.logger.Info("end of index page", "page", page, "links", n)
	}

	s.logger.Info("total recipes from index", "count", len(res.Links), "pages", res.Pages)
	return res
}

func (s *Scraper) collectIndexPage(ctx context.Context, page int, res *types.LinkResult) (int, error) {
	if err := s.navigate(ctx, s.site.IndexURL(page)); err != nil {
		return 0, err
	}

	root, err := s.document(ctx)
	if err != nil {
		return 0, err
	}

	sel := s.site.Selectors
	items, err := s.find(root, sel.IndexItem)
	if err != nil {
		return 0, err
	}

	found := 0
	for _, item := range items {
		link, err := s.anchorHref(item, sel.IndexLink)
		if err != nil {
			return found, err
		}
		if link == "" {
			continue
		}
		s.addLink(res, link)
		found++
	}
	return found, nil
}
