package search

import (
	"context"
	"errors"
)

// Result is a single web search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Mode identifies which evidence path produced a result set.
type Mode string

const (
	ModeLiveWeb  Mode = "live-web"
	ModeGrounded Mode = "grounded"
)

// ErrUnavailable signals that no search strategy could be attempted at all.
// "No results found" is not an error; providers return an empty slice.
var ErrUnavailable = errors.New("search: no provider available")

// Provider abstracts a web-search backend.
type Provider interface {
	// Mode reports the evidence path this provider represents.
	Mode() Mode
	// Available reports whether the provider is configured to run.
	Available() bool
	Search(ctx context.Context, query string) ([]Result, error)
}
