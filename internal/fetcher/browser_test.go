package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/IshaanNene/RecipeGoat/internal/config"
)

// TestBrowserSessionLoadMore drives a real Chromium against a local page whose
// button appends a card and removes itself after two clicks.
func TestBrowserSessionLoadMore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test")
	}
	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("no local browser found")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
<div id="list"><div class="card">1</div></div>
<button class="more" onclick="
  var d=document.createElement('div');d.className='card';d.textContent='x';
  document.getElementById('list').appendChild(d);
  if(document.querySelectorAll('.card').length>=3){this.remove();}
">more</button>
</body></html>`))
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Browser.Bin = bin

	ctx := context.Background()
	sess, err := NewBrowserSession(ctx, cfg, testLogger)
	if err != nil {
		t.Fatalf("open browser: %v", err)
	}
	defer sess.Close()

	page := sess.Page()
	if err := page.Navigate(ctx, srv.URL); err != nil {
		t.Fatalf("navigate: %v", err)
	}

	for i := 0; i < 2; i++ {
		visible, err := page.Visible(ctx, ".more")
		if err != nil || !visible {
			t.Fatalf("click %d: expected visible button (err=%v)", i, err)
		}
		if err := page.Click(ctx, ".more"); err != nil {
			t.Fatalf("click %d: %v", i, err)
		}
	}

	n, err := page.Count(ctx, ".card")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 cards, got %d", n)
	}
	visible, _ := page.Visible(ctx, ".more")
	if visible {
		t.Error("expected button to be gone")
	}

	if err := sess.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
}
