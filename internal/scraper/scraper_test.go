package scraper

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/IshaanNene/RecipeGoat/internal/config"
	"github.com/IshaanNene/RecipeGoat/internal/fetcher/fetchertest"
	"github.com/IshaanNene/RecipeGoat/internal/observability"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Pagination.SettleTimeout = 50 * time.Millisecond
	cfg.Pagination.PollInterval = 5 * time.Millisecond
	return cfg
}

func newTestScraper(page *fetchertest.Page) (*Scraper, *observability.Stats) {
	stats := observability.NewStats()
	return New(page, testConfig(), stats, testLogger), stats
}

// card renders one listing card. An empty href omits the text wrap entirely.
func card(href string) string {
	if href == "" {
		return `<div class="o-Capsule__m-MediaBlock m-MediaBlock"><div class="m-MediaBlock__m-MediaWrap"><img src="x.jpg"></div></div>`
	}
	return fmt.Sprintf(`<div class="o-Capsule__m-MediaBlock m-MediaBlock">
  <div class="m-MediaBlock__m-TextWrap"><h3><a href="%s">Recipe</a></h3></div>
</div>`, href)
}

func listingPage(hrefs []string, loadMore bool) string {
	var b strings.Builder
	b.WriteString("<html><body><section>")
	for _, h := range hrefs {
		b.WriteString(card(h))
	}
	b.WriteString("</section>")
	if loadMore {
		b.WriteString(`<button class="o-Button--load-more">Load More</button>`)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func indexPage(hrefs ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><ul class="m-PromoList">`)
	for _, h := range hrefs {
		fmt.Fprintf(&b, `<li class="m-PromoList__a-ListItem"><a href="%s">Recipe</a></li>`, h)
	}
	b.WriteString("</ul></body></html>")
	return b.String()
}

const detailHTML = `<html><body>
<div class="o-Attribution">
  <span class="o-Attribution__a-Name">Recipe courtesy of <a href="/profiles/talent/michael-chiarello">  Michael Chiarello </a></span>
</div>
<section class="o-Ingredients">
  <p class="o-Ingredients__a-Ingredient">
    <span class="o-Ingredients__a-Ingredient--CheckboxLabel">
      2 cups dried cannellini beans
    </span>
  </p>
  <p class="o-Ingredients__a-Ingredient"><span class="o-Ingredients__a-Ingredient--CheckboxLabel"> 1/4 cup olive oil</span></p>
  <p class="o-Ingredients__a-Ingredient"><span class="o-Ingredients__a-Ingredient--CheckboxLabel">Salt </span></p>
</section>
<section class="o-Method">
  <ol>
    <li class="o-Method__m-Step">
      Soak the beans overnight.
    </li>
    <li class="o-Method__m-Step"> Simmer until tender. </li>
  </ol>
</section>
</body></html>`
