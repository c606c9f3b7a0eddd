// Package fetchertest provides an in-memory fetcher.Page and fetcher.Session
// backed by fixture HTML.
package fetchertest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/net/html"

	"github.com/IshaanNene/RecipeGoat/internal/dom"
	"github.com/IshaanNene/RecipeGoat/internal/fetcher"
	"github.com/IshaanNene/RecipeGoat/internal/types"
)

// ClickFunc reacts to a click on the page, typically by calling SetHTML.
type ClickFunc func(p *Page, sel dom.Selector) error

var (
	_ fetcher.Page    = (*Page)(nil)
	_ fetcher.Session = (*Session)(nil)
)

// Page serves fixture documents keyed by URL.
type Page struct {
	docs    map[string]string
	navErrs map[string]error
	onClick ClickFunc

	// Visited records every Navigate call in order.
	Visited []string
	// Clicks counts successful Click calls.
	Clicks int

	url  string
	body string
	root *html.Node
}

// NewPage returns an empty fixture page.
func NewPage() *Page {
	return &Page{
		docs:    make(map[string]string),
		navErrs: make(map[string]error),
	}
}

// Serve registers the document returned for url.
func (p *Page) Serve(url, doc string) *Page {
	p.docs[url] = doc
	return p
}

// Fail makes navigation to url return err.
func (p *Page) Fail(url string, err error) *Page {
	p.navErrs[url] = err
	return p
}

// OnClick installs the click handler. Without one, Click fails with
// types.ErrInteractionUnsupported.
func (p *Page) OnClick(fn ClickFunc) *Page {
	p.onClick = fn
	return p
}

// SetHTML replaces the current document in place, as a script would.
func (p *Page) SetHTML(doc string) {
	root, err := dom.Parse(doc)
	if err != nil {
		panic(fmt.Sprintf("fetchertest: bad fixture: %v", err))
	}
	p.body = doc
	p.root = root
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return &types.NavigationError{URL: url, Err: err}
	}
	p.Visited = append(p.Visited, url)
	if err, ok := p.navErrs[url]; ok {
		return &types.NavigationError{URL: url, Err: err}
	}
	doc, ok := p.docs[url]
	if !ok {
		return &types.NavigationError{URL: url, StatusCode: 404, Err: errors.New("no fixture")}
	}
	p.url = url
	p.SetHTML(doc)
	return nil
}

func (p *Page) URL() string { return p.url }

func (p *Page) HTML(ctx context.Context) (string, error) { return p.body, nil }

// Visible treats an element carrying the hidden attribute as not visible.
func (p *Page) Visible(ctx context.Context, sel dom.Selector) (bool, error) {
	n, err := dom.First(p.root, sel)
	if err != nil || n == nil {
		return false, err
	}
	_, hidden := dom.Attr(n, "hidden")
	return !hidden, nil
}

func (p *Page) Click(ctx context.Context, sel dom.Selector) error {
	if p.onClick == nil {
		return &types.SelectorError{URL: p.url, Selector: sel.String(), Err: types.ErrInteractionUnsupported}
	}
	if err := p.onClick(p, sel); err != nil {
		return err
	}
	p.Clicks++
	return nil
}

func (p *Page) Count(ctx context.Context, sel dom.Selector) (int, error) {
	return dom.Count(p.root, sel)
}

// Session wraps a Page and counts Close calls.
type Session struct {
	P        *Page
	CloseErr error

	closes atomic.Int32
}

// NewSession returns a session over p.
func NewSession(p *Page) *Session {
	return &Session{P: p}
}

func (s *Session) Page() fetcher.Page { return s.P }

func (s *Session) Type() string { return "fixture" }

func (s *Session) Close() error {
	s.closes.Add(1)
	return s.CloseErr
}

// Closes returns how many times Close was called.
func (s *Session) Closes() int { return int(s.closes.Load()) }
