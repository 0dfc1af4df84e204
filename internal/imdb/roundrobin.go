package imdb

import (
	"context"
	"sync/atomic"
)

// RoundRobin fans lookups out across several equivalent clients to
// spread connection state, the same way the scraping side shares its
// authenticated sessions. The only mutable state is the counter.
type RoundRobin struct {
	backends []Searcher
	next     atomic.Uint64
}

// NewRoundRobin creates a round-robin searcher over the backends.
func NewRoundRobin(backends ...Searcher) *RoundRobin {
	return &RoundRobin{backends: backends}
}

func (r *RoundRobin) pick() Searcher {
	n := r.next.Add(1) - 1
	return r.backends[n%uint64(len(r.backends))]
}

// Advanced implements Searcher.
func (r *RoundRobin) Advanced(ctx context.Context, title string, yearStart, yearEnd int) (*Candidate, error) {
	return r.pick().Advanced(ctx, title, yearStart, yearEnd)
}

// Find implements Searcher.
func (r *RoundRobin) Find(ctx context.Context, title string, year int) (*Candidate, error) {
	return r.pick().Find(ctx, title, year)
}
