// Package dom queries parsed HTML with CSS selectors (goquery) or XPath
// expressions (htmlquery) through one Selector type.
package dom

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// xpathPrefix marks a Selector as an XPath expression.
const xpathPrefix = "xpath:"

// Selector is a CSS selector, or an XPath expression when prefixed with "xpath:".
type Selector string

// IsXPath reports whether the selector is an XPath expression.
func (s Selector) IsXPath() bool {
	return strings.HasPrefix(string(s), xpathPrefix)
}

// Expr returns the selector without its type prefix.
func (s Selector) Expr() string {
	return strings.TrimSpace(strings.TrimPrefix(string(s), xpathPrefix))
}

// Validate checks that the selector compiles.
func (s Selector) Validate() error {
	expr := s.Expr()
	if expr == "" {
		return fmt.Errorf("empty selector")
	}
	if s.IsXPath() {
		if _, err := htmlquery.QueryAll(&html.Node{Type: html.DocumentNode}, expr); err != nil {
			return fmt.Errorf("invalid xpath %q: %w", expr, err)
		}
		return nil
	}
	if _, err := cascadia.ParseGroup(expr); err != nil {
		return fmt.Errorf("invalid css selector %q: %w", expr, err)
	}
	return nil
}

func (s Selector) String() string { return string(s) }

// Parse builds a node tree from an HTML document.
func Parse(doc string) (*html.Node, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return root, nil
}

// Find returns every node under root matching sel, in document order.
func Find(root *html.Node, sel Selector) ([]*html.Node, error) {
	if root == nil {
		return nil, nil
	}
	if sel.IsXPath() {
		nodes, err := htmlquery.QueryAll(root, sel.Expr())
		if err != nil {
			return nil, fmt.Errorf("xpath %q: %w", sel.Expr(), err)
		}
		return nodes, nil
	}
	if _, err := cascadia.ParseGroup(sel.Expr()); err != nil {
		return nil, fmt.Errorf("css %q: %w", sel.Expr(), err)
	}
	return goquery.NewDocumentFromNode(root).Find(sel.Expr()).Nodes, nil
}

// First returns the first node under root matching sel, or nil.
func First(root *html.Node, sel Selector) (*html.Node, error) {
	nodes, err := Find(root, sel)
	if err != nil || len(nodes) == 0 {
		return nil, err
	}
	return nodes[0], nil
}

// Count returns the number of nodes under root matching sel.
func Count(root *html.Node, sel Selector) (int, error) {
	nodes, err := Find(root, sel)
	return len(nodes), err
}

// Text returns the node's text content with surrounding whitespace trimmed.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(htmlquery.InnerText(n))
}

// Attr returns the named attribute of n and whether it was present.
func Attr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	return goquery.NewDocumentFromNode(n).Attr(name)
}

// ResolveURL resolves href against base the way a browser computes a.href.
func ResolveURL(base, href string) (string, error) {
	href = strings.TrimSpace(href)
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parse href %q: %w", href, err)
	}
	if base == "" {
		return ref.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base %q: %w", base, err)
	}
	return b.ResolveReference(ref).String(), nil
}
