package scraper

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/IshaanNene/RecipeGoat/internal/fetcher/fetchertest"
	"github.com/IshaanNene/RecipeGoat/internal/types"
)

const detailURL = "https://www.foodnetwork.com/recipes/michael-chiarello/super-tuscan-white-bean-soup-recipe-1947697"

func TestExtractDetail(t *testing.T) {
	page := fetchertest.NewPage().Serve(detailURL, detailHTML)
	s, stats := newTestScraper(page)

	res := s.ExtractDetail(context.Background(), detailURL)
	if !res.OK() {
		t.Fatalf("extraction failed: %v", res.Err)
	}

	d := res.Detail
	if d.Author != "Michael Chiarello" {
		t.Errorf("expected trimmed author, got %q", d.Author)
	}
	wantIngredients := []string{"2 cups dried cannellini beans", "1/4 cup olive oil", "Salt"}
	if len(d.Ingredients) != len(wantIngredients) {
		t.Fatalf("expected %d ingredients, got %v", len(wantIngredients), d.Ingredients)
	}
	for i := range wantIngredients {
		if d.Ingredients[i] != wantIngredients[i] {
			t.Errorf("ingredient %d: expected %q, got %q", i, wantIngredients[i], d.Ingredients[i])
		}
	}
	wantSteps := []string{"Soak the beans overnight.", "Simmer until tender."}
	for i := range wantSteps {
		if d.Instructions[i] != wantSteps[i] {
			t.Errorf("step %d: expected %q, got %q", i, wantSteps[i], d.Instructions[i])
		}
	}

	flat := d.Flatten()
	if len(flat) != 1+3+2 {
		t.Fatalf("expected 6 flattened entries, got %d: %v", len(flat), flat)
	}
	if flat[0] != "Michael Chiarello" || flat[1] != wantIngredients[0] || flat[4] != wantSteps[0] {
		t.Errorf("flattened order should be author, ingredients, instructions: %v", flat)
	}
	if stats.Ingredients.Load() != 3 || stats.Instructions.Load() != 2 {
		t.Errorf("unexpected stats %v", stats.Snapshot())
	}
}

func TestExtractDetailMissingAttribution(t *testing.T) {
	doc := strings.Replace(detailHTML, "o-Attribution__a-Name", "o-Attribution__a-Other", 1)
	page := fetchertest.NewPage().Serve(detailURL, doc)
	s, _ := newTestScraper(page)

	res := s.ExtractDetail(context.Background(), detailURL)
	if res.OK() {
		t.Fatal("expected failure without attribution")
	}
	if res.Detail != nil {
		t.Errorf("failed extraction must not carry a partial detail, got %+v", res.Detail)
	}
	var selErr *types.SelectorError
	if !errors.As(res.Err, &selErr) {
		t.Fatalf("expected SelectorError, got %v", res.Err)
	}
	if !types.IsSelectorMiss(res.Err) {
		t.Errorf("expected ErrSelectorMiss, got %v", res.Err)
	}
	if selErr.Selector != ".o-Attribution__a-Name" {
		t.Errorf("unexpected selector %q", selErr.Selector)
	}
}

func TestExtractDetailAttributionWithoutLink(t *testing.T) {
	doc := `<html><body><span class="o-Attribution__a-Name">Food Network Kitchen</span></body></html>`
	page := fetchertest.NewPage().Serve(detailURL, doc)
	s, _ := newTestScraper(page)

	res := s.ExtractDetail(context.Background(), detailURL)
	if !types.IsSelectorMiss(res.Err) || res.Detail != nil {
		t.Errorf("expected selector miss for author link, got %+v", res)
	}
}

func TestExtractDetailNoIngredientsIsNotFailure(t *testing.T) {
	doc := `<html><body><span class="o-Attribution__a-Name"><a href="/p">Ree Drummond</a></span></body></html>`
	page := fetchertest.NewPage().Serve(detailURL, doc)
	s, _ := newTestScraper(page)

	res := s.ExtractDetail(context.Background(), detailURL)
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Detail.Ingredients == nil || len(res.Detail.Ingredients) != 0 {
		t.Errorf("expected empty, non-nil ingredients, got %#v", res.Detail.Ingredients)
	}
	if len(res.Detail.Instructions) != 0 {
		t.Errorf("expected no instructions, got %v", res.Detail.Instructions)
	}
}

func TestExtractDetailNavigationFailure(t *testing.T) {
	page := fetchertest.NewPage().Fail(detailURL, errors.New("connection reset"))
	s, _ := newTestScraper(page)

	res := s.ExtractDetail(context.Background(), detailURL)
	var navErr *types.NavigationError
	if !errors.As(res.Err, &navErr) {
		t.Errorf("expected NavigationError, got %v", res.Err)
	}
	if res.Detail != nil {
		t.Error("expected no detail on navigation failure")
	}
}
