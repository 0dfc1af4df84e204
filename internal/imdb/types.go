package imdb

import "context"

// Candidate is a successful lookup result: the canonical IMDb
// identifier plus whatever runtime the page exposed. Candidates are
// only ever constructed by this package's strategies.
type Candidate struct {
	ID       string `json:"id"`    // zero-padded numeric id (the "tt" prefix is presentation)
	Title    string `json:"title"` // display title as IMDb renders it
	Duration int    `json:"duration"` // minutes, 0 when the page carried none
}

// Searcher is the lookup seam the linker depends on. Both strategies
// return a Candidate or one of the typed misses (ErrZeroResults,
// ErrInvalidDuration); transport failures surface as ordinary errors
// and are treated as misses by the caller.
type Searcher interface {
	// Advanced runs the listing search scoped to an inclusive year window.
	Advanced(ctx context.Context, title string, yearStart, yearEnd int) (*Candidate, error)
	// Find runs the quick-find search and follows the first result's
	// detail page for its runtime.
	Find(ctx context.Context, title string, year int) (*Candidate, error)
}
