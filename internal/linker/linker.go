// Package linker resolves scraped titles to IMDb candidates through a
// ranked multi-strategy fallback search, corroborated by runtime.
package linker

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hbollon/go-edlib"

	"fwexport/internal/filmweb"
	"fwexport/internal/imdb"
)

// MatchStatus is the terminal resolution state of one title.
type MatchStatus int

const (
	StatusNotFound MatchStatus = iota
	StatusNeedsReview
	StatusConfirmed
)

func (s MatchStatus) String() string {
	switch s {
	case StatusConfirmed:
		return "confirmed"
	case StatusNeedsReview:
		return "needs-review"
	default:
		return "not-found"
	}
}

// Match is the outcome of resolving one title. Created exactly once
// per title; review may later flip NeedsReview to Confirmed or
// NotFound, but the candidate is never re-queried.
type Match struct {
	Candidate  *imdb.Candidate
	Status     MatchStatus
	Similarity float64 // Jaro-Winkler similarity between query and candidate title
}

// Linker runs the per-title fallback search.
type Linker struct {
	search imdb.Searcher
	log    *slog.Logger
}

// New creates a Linker on top of a search backend.
func New(search imdb.Searcher, log *slog.Logger) *Linker {
	if log != nil {
		log = log.With("component", "linker")
	}
	return &Linker{search: search, log: log}
}

// Resolve finds an IMDb candidate for a scraped title. Title variants
// are tried in descending rank order, and for each variant the
// listing search runs before the quick-find search; the first
// candidate wins. Trying every variant before giving up matters more
// than exhausting strategies on one guess: retitled releases and
// transliterations make cross-site name divergence the common case.
func (l *Linker) Resolve(ctx context.Context, title *filmweb.Title) Match {
	for _, attempt := range buildQueue(title) {
		if ctx.Err() != nil {
			return Match{Status: StatusNotFound}
		}

		candidate := l.tryStrategies(ctx, attempt.Title, title.Year)
		if candidate == nil {
			continue
		}

		match := Match{
			Candidate:  candidate,
			Status:     ClassifyDuration(title.Duration, candidate.Duration),
			Similarity: similarity(attempt.Title, candidate.Title),
		}
		if l.log != nil {
			l.log.Debug("resolved title",
				"title_id", title.ID, "query", attempt.Title,
				"imdb_id", candidate.ID, "status", match.Status.String(),
				"similarity", match.Similarity)
		}
		return match
	}

	if l.log != nil {
		l.log.Debug("no match found", "title_id", title.ID, "name", title.Name)
	}
	return Match{Status: StatusNotFound}
}

// tryStrategies runs one title variant through both strategies.
// Typed misses and transport failures both advance to the next
// strategy; only a candidate stops the chain.
func (l *Linker) tryStrategies(ctx context.Context, query string, year filmweb.Year) *imdb.Candidate {
	candidate, err := l.search.Advanced(ctx, query, year.Start, year.End)
	if err == nil {
		return candidate
	}
	l.logMiss("advanced", query, err)

	candidate, err = l.search.Find(ctx, query, year.Start)
	if err == nil {
		return candidate
	}
	l.logMiss("find", query, err)

	return nil
}

func (l *Linker) logMiss(strategy, query string, err error) {
	if l.log == nil {
		return
	}
	// Expected misses drive fallback; only transport failures are
	// interesting above debug level.
	if errors.Is(err, imdb.ErrZeroResults) || errors.Is(err, imdb.ErrInvalidDuration) {
		l.log.Debug("strategy miss", "strategy", strategy, "query", query, "reason", err.Error())
		return
	}
	l.log.Warn("strategy request failed", "strategy", strategy, "query", query, "error", err)
}

func similarity(query, candidate string) float64 {
	return float64(edlib.JaroWinklerSimilarity(
		imdb.NormalizeForComparison(query),
		imdb.NormalizeForComparison(candidate),
	))
}
