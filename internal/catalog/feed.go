package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/nmoreira/storefront-core/pkg/logger"
	"github.com/nmoreira/storefront-core/pkg/metrics"
)

// PageSource abstracts the remote catalog for the feed.
type PageSource interface {
	FetchPage(ctx context.Context, page int) (Page, error)
}

// Feed drives the listing screen: it owns the cache, the filter/sort state
// and the category vocabulary, and sequences page fetches so that at most one
// load-more is in flight and a refresh supersedes any fetch issued before it.
type Feed struct {
	source PageSource
	logg   *logger.Logger
	m      *metrics.StorefrontMetrics

	mu         sync.Mutex
	cache      *Cache
	state      *FilterSortState
	categories []string
	known      map[string]struct{}
	page       int
	hasMore    bool
	inFlight   bool
	generation uint64
}

// NewFeed builds a feed over the provided page source.
func NewFeed(source PageSource, logg *logger.Logger, m *metrics.StorefrontMetrics) (*Feed, error) {
	if source == nil {
		return nil, fmt.Errorf("page source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Feed{
		source:  source,
		logg:    logg,
		m:       m,
		cache:   NewCache(),
		state:   NewFilterSortState(),
		known:   make(map[string]struct{}),
		hasMore: true,
	}, nil
}

// LoadFirst fetches the first page and resets the cache with it.
func (f *Feed) LoadFirst(ctx context.Context) error {
	return f.loadPageOne(ctx, "load")
}

// Refresh refetches the first page and replaces the cache. Any page fetch
// that was in flight when Refresh was called is discarded on arrival, so a
// stale page can never be appended after the reset. The category vocabulary
// is kept as-is: categories that disappear from the catalog stay selectable.
func (f *Feed) Refresh(ctx context.Context) error {
	return f.loadPageOne(ctx, "refresh")
}

func (f *Feed) loadPageOne(ctx context.Context, kind string) error {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.mu.Unlock()

	page, err := f.source.FetchPage(ctx, 1)
	if err != nil {
		f.m.IncFetchFailure(kind)
		f.logg.Error(f.logg.WithPage(ctx, 1), "catalog fetch failed", err)
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.generation != gen {
		// superseded by a newer refresh
		return nil
	}
	f.cache.Reset(page.Items)
	f.page = 1
	f.hasMore = page.HasMore
	f.absorbCategories(page.Items)
	f.m.IncFetchSuccess(kind)
	return nil
}

// LoadMore fetches the next page and appends it. A call while another fetch
// is in flight, or once the source is exhausted, is a silent no-op.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.inFlight || !f.hasMore {
		f.mu.Unlock()
		return nil
	}
	f.inFlight = true
	gen := f.generation
	next := f.page + 1
	f.mu.Unlock()

	page, err := f.source.FetchPage(ctx, next)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if err != nil {
		f.m.IncFetchFailure("load_more")
		f.logg.Error(f.logg.WithPage(ctx, next), "catalog fetch failed", err)
		return err
	}
	if f.generation != gen {
		// a refresh reset the cache while this page was in flight
		return nil
	}
	f.cache.AppendPage(page.Items)
	f.page = next
	f.hasMore = page.HasMore
	f.absorbCategories(page.Items)
	f.m.IncFetchSuccess("load_more")
	return nil
}

// Visible returns the derived view for the current filter/sort criteria.
func (f *Feed) Visible() []Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Derive(f.cache.Snapshot(), f.state)
}

// Categories returns the accumulated category vocabulary in first-seen order.
func (f *Feed) Categories() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.categories))
	copy(out, f.categories)
	return out
}

// State exposes the filter/sort criteria for mutation by the owner.
func (f *Feed) State() *FilterSortState {
	return f.state
}

// HasMore reports whether another page is available.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// Len reports the number of cached products across all fetched pages.
func (f *Feed) Len() int {
	return f.cache.Len()
}

func (f *Feed) absorbCategories(items []Product) {
	for _, item := range items {
		if item.Category == "" {
			continue
		}
		if _, seen := f.known[item.Category]; seen {
			continue
		}
		f.known[item.Category] = struct{}{}
		f.categories = append(f.categories, item.Category)
	}
}
