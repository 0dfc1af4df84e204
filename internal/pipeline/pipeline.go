// Package pipeline is the two-stage concurrent harvest engine: a
// bounded pool of scrapers fills a queue of listing-page batches, and
// a second bounded pool drains it, resolving every title against IMDb.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"fwexport/internal/filmweb"
	"fwexport/internal/linker"
)

// PageFetcher is the stage-A seam: one authenticated scraping client.
type PageFetcher interface {
	Page(ctx context.Context, username string, cat filmweb.Category, page int) ([]filmweb.Title, []error, error)
}

// Resolver is the stage-B seam.
type Resolver interface {
	Resolve(ctx context.Context, title *filmweb.Title) linker.Match
}

// Plan is one category's worth of listing pages to harvest.
type Plan struct {
	Category filmweb.Category
	Pages    int
}

// Result pairs a scraped title with its resolution.
type Result struct {
	Title filmweb.Title
	Match linker.Match
}

// Stats summarizes a run.
type Stats struct {
	Pages          int
	Titles         int
	SkippedRecords int
	SkippedPages   int
}

// batch is one fetched listing page in flight between the stages.
// Ownership transfers with the channel send; the producer never
// touches it again.
type batch struct {
	category filmweb.Category
	page     int
	titles   []filmweb.Title
}

// Pipeline wires the stages together.
type Pipeline struct {
	sources  *Pool[PageFetcher]
	resolver Resolver
	workers  int
	log      *slog.Logger
}

// New creates a pipeline. workers bounds the concurrent outbound
// requests per stage; it is the system's only admission control.
func New(sources *Pool[PageFetcher], resolver Resolver, workers int, log *slog.Logger) *Pipeline {
	if log != nil {
		log = log.With("component", "pipeline")
	}
	return &Pipeline{
		sources:  sources,
		resolver: resolver,
		workers:  workers,
		log:      log,
	}
}

// Run harvests every page in the plan and resolves every title.
// Result order is unspecified. A rejected session cancels both
// stages, discards queued batches, and surfaces filmweb.ErrAuthRejected.
func (p *Pipeline) Run(ctx context.Context, username string, plans []Plan) ([]Result, Stats, error) {
	total := 0
	for _, plan := range plans {
		total += plan.Pages
	}

	batches := make(chan batch, p.workers)

	var (
		mu      sync.Mutex
		results []Result
		stats   Stats
	)

	g, ctx := errgroup.WithContext(ctx)

	// Stage A: scrape listing pages, bounded to workers goroutines.
	g.Go(func() error {
		defer close(batches)

		scrapers, sctx := errgroup.WithContext(ctx)
		scrapers.SetLimit(p.workers)

		seq := 0
		for _, plan := range plans {
			for page := 1; page <= plan.Pages; page++ {
				plan, page, seq := plan, page, seq
				scrapers.Go(func() error {
					return p.scrapePage(sctx, username, plan.Category, page, seq, batches, &mu, &stats)
				})
				seq++
			}
		}
		return scrapers.Wait()
	})

	// Stage B: resolve titles from completed batches.
	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					// Abort policy: queued batches are discarded, not drained.
					return ctx.Err()
				case b, ok := <-batches:
					if !ok {
						return nil
					}
					if ctx.Err() != nil {
						return ctx.Err()
					}
					p.resolveBatch(ctx, b, &mu, &results, &stats)
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	if stats.Pages != total && p.log != nil {
		p.log.Warn("run finished with unfetched pages", "expected", total, "fetched", stats.Pages)
	}
	return results, stats, nil
}

func (p *Pipeline) scrapePage(ctx context.Context, username string, cat filmweb.Category, page, seq int, batches chan<- batch, mu *sync.Mutex, stats *Stats) error {
	titles, parseErrs, err := p.sources.Get(seq).Page(ctx, username, cat, page)
	if err != nil {
		if errors.Is(err, filmweb.ErrAuthRejected) {
			return fmt.Errorf("%s page %d: %w", cat.String(), page, err)
		}
		// A single unreachable page is not worth the run: log, count, move on.
		if p.log != nil {
			p.log.Warn("skipping unreadable page", "category", cat.String(), "page", page, "error", err)
		}
		mu.Lock()
		stats.SkippedPages++
		mu.Unlock()
		return nil
	}

	for _, perr := range parseErrs {
		if p.log != nil {
			p.log.Warn("skipping unparseable record", "category", cat.String(), "page", page, "error", perr)
		}
	}
	mu.Lock()
	stats.Pages++
	stats.SkippedRecords += len(parseErrs)
	mu.Unlock()

	select {
	case batches <- batch{category: cat, page: page, titles: titles}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pipeline) resolveBatch(ctx context.Context, b batch, mu *sync.Mutex, results *[]Result, stats *Stats) {
	for i := range b.titles {
		match := p.resolver.Resolve(ctx, &b.titles[i])
		mu.Lock()
		*results = append(*results, Result{Title: b.titles[i], Match: match})
		stats.Titles++
		mu.Unlock()
	}
	if p.log != nil {
		p.log.Debug("resolved batch", "category", b.category.String(), "page", b.page, "titles", len(b.titles))
	}
}
