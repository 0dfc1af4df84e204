// Package imdb resolves titles against IMDb's public search pages.
package imdb

import "errors"

var (
	// ErrZeroResults indicates the search returned no listing at all.
	// This is an expected miss that drives strategy fallback, not a failure.
	ErrZeroResults = errors.New("no search results")

	// ErrInvalidDuration indicates a listing was found but its runtime
	// field was missing or unparseable, so the match cannot be
	// corroborated.
	ErrInvalidDuration = errors.New("runtime missing or unparseable")
)
