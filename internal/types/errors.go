package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrSelectorMiss           = errors.New("required element not found")
	ErrInteractionUnsupported = errors.New("page backend cannot interact with elements")
	ErrLoadMoreCapped         = errors.New("load-more click limit reached")
	ErrSessionClosed          = errors.New("session has been closed")
	ErrInvalidURL             = errors.New("invalid URL")
)

// NavigationError wraps failures that occur while loading a page.
type NavigationError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NavigationError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("navigate %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("navigate %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// SelectorError reports a selector that failed against a loaded page.
type SelectorError struct {
	URL      string
	Selector string
	Err      error
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("selector %q on %s: %v", e.Selector, e.URL, e.Err)
}

func (e *SelectorError) Unwrap() error { return e.Err }

// IsSelectorMiss reports whether err stems from a missing required element.
func IsSelectorMiss(err error) bool {
	return errors.Is(err, ErrSelectorMiss)
}
