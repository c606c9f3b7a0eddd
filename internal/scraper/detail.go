package scraper

import (
	"context"

	"golang.org/x/net/html"

	"github.com/IshaanNene/RecipeGoat/internal/dom"
	"github.com/IshaanNene/RecipeGoat/internal/types"
)

// ExtractDetail loads one recipe page and reads its author, ingredients and
// instructions. The author is required; without it the result carries a
// *types.SelectorError and no detail.
func (s *Scraper) ExtractDetail(ctx context.Context, url string) types.DetailResult {
	detail, err := s.extractDetail(ctx, url)
	if err != nil {
		s.stats.Errors.Add(1)
		s.logger.Error("detail extraction failed", "url", url, "error", err)
		return types.DetailResult{URL: url, Err: err}
	}

	s.logger.Info("recipe detail extracted",
		"url", url,
		"author", detail.Author,
		"ingredients", len(detail.Ingredients),
		"instructions", len(detail.Instructions),
	)
	return types.DetailResult{URL: url, Detail: detail}
}

func (s *Scraper) extractDetail(ctx context.Context, url string) (*types.RecipeDetail, error) {
	if err := s.navigate(ctx, url); err != nil {
		return nil, err
	}

	root, err := s.document(ctx)
	if err != nil {
		return nil, err
	}

	author, err := s.author(root)
	if err != nil {
		return nil, err
	}

	detail := &types.RecipeDetail{
		URL:          url,
		Author:       author,
		Ingredients:  []string{},
		Instructions: []string{},
	}

	sel := s.site.Selectors
	ingredients, err := s.find(root, sel.Ingredient)
	if err != nil {
		return nil, err
	}
	for i, ing := range ingredients {
		label, err := dom.First(ing, sel.IngredientLabel)
		if err != nil {
			return nil, &types.SelectorError{URL: url, Selector: sel.IngredientLabel.String(), Err: err}
		}
		if label == nil {
			s.logger.Debug("ingredient without label skipped", "index", i)
			continue
		}
		text := dom.Text(label)
		detail.Ingredients = append(detail.Ingredients, text)
		s.stats.Ingredients.Add(1)
		s.logger.Info("ingredient", "text", text)
	}

	steps, err := s.find(root, sel.Instruction)
	if err != nil {
		return nil, err
	}
	for _, step := range steps {
		text := dom.Text(step)
		detail.Instructions = append(detail.Instructions, text)
		s.stats.Instructions.Add(1)
		s.logger.Info("instruction", "text", text)
	}

	return detail, nil
}

// author reads the attribution anchor text.
func (s *Scraper) author(root *html.Node) (string, error) {
	sel := s.site.Selectors

	attribution, err := dom.First(root, sel.Author)
	if err != nil {
		return "", &types.SelectorError{URL: s.page.URL(), Selector: sel.Author.String(), Err: err}
	}
	if attribution == nil {
		return "", &types.SelectorError{URL: s.page.URL(), Selector: sel.Author.String(), Err: types.ErrSelectorMiss}
	}

	link, err := dom.First(attribution, sel.AuthorLink)
	if err != nil {
		return "", &types.SelectorError{URL: s.page.URL(), Selector: sel.AuthorLink.String(), Err: err}
	}
	if link == nil {
		return "", &types.SelectorError{URL: s.page.URL(), Selector: sel.AuthorLink.String(), Err: types.ErrSelectorMiss}
	}
	return dom.Text(link), nil
}
