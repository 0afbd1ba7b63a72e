package catalog

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/nmoreira/storefront-core/pkg/logger"
	"github.com/nmoreira/storefront-core/pkg/metrics"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	mu      sync.Mutex
	pages   map[int]Page
	errOn   map[int]error
	calls   []int
	blockOn int
	started chan struct{}
	release chan struct{}
}

func newStubSource() *stubSource {
	return &stubSource{
		pages:   make(map[int]Page),
		errOn:   make(map[int]error),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (s *stubSource) FetchPage(ctx context.Context, page int) (Page, error) {
	s.mu.Lock()
	s.calls = append(s.calls, page)
	blocked := s.blockOn == page
	s.mu.Unlock()

	if blocked {
		s.started <- struct{}{}
		<-s.release
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errOn[page]; err != nil {
		return Page{}, err
	}
	return s.pages[page], nil
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newTestFeed(t *testing.T, source PageSource) *Feed {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	feed, err := NewFeed(source, logg, metrics.NewStorefrontMetrics(nil))
	require.NoError(t, err)
	return feed
}

func catProduct(id int64, category string) Product {
	return Product{ID: id, Category: category}
}

func TestFeedLoadFirstAndLoadMore(t *testing.T) {
	t.Parallel()

	source := newStubSource()
	source.pages[1] = Page{Items: []Product{catProduct(1, "a"), catProduct(2, "b")}, Total: 4, HasMore: true}
	source.pages[2] = Page{Items: []Product{catProduct(3, "a"), catProduct(4, "c")}, Total: 4, HasMore: false}

	feed := newTestFeed(t, source)
	ctx := context.Background()

	require.NoError(t, feed.LoadFirst(ctx))
	require.Equal(t, 2, feed.Len())
	require.True(t, feed.HasMore())

	require.NoError(t, feed.LoadMore(ctx))
	require.Equal(t, 4, feed.Len())
	require.False(t, feed.HasMore())
	require.Equal(t, []string{"a", "b", "c"}, feed.Categories())

	// exhausted: no further fetch is issued
	require.NoError(t, feed.LoadMore(ctx))
	require.Equal(t, 2, source.callCount())
}

func TestFeedLoadMoreGatesOnInFlightFetch(t *testing.T) {
	t.Parallel()

	source := newStubSource()
	source.pages[1] = Page{Items: []Product{catProduct(1, "a")}, Total: 3, HasMore: true}
	source.pages[2] = Page{Items: []Product{catProduct(2, "a")}, Total: 3, HasMore: true}
	source.blockOn = 2

	feed := newTestFeed(t, source)
	ctx := context.Background()
	require.NoError(t, feed.LoadFirst(ctx))

	done := make(chan error, 1)
	go func() { done <- feed.LoadMore(ctx) }()
	<-source.started

	// second trigger while the first fetch is in flight is a silent no-op
	require.NoError(t, feed.LoadMore(ctx))
	require.Equal(t, 2, source.callCount())

	close(source.release)
	require.NoError(t, <-done)
	require.Equal(t, 2, feed.Len())
}

func TestFeedRefreshSupersedesInFlightLoadMore(t *testing.T) {
	t.Parallel()

	source := newStubSource()
	source.pages[1] = Page{Items: []Product{catProduct(1, "a")}, Total: 3, HasMore: true}
	source.pages[2] = Page{Items: []Product{catProduct(2, "a")}, Total: 3, HasMore: true}
	source.blockOn = 2

	feed := newTestFeed(t, source)
	ctx := context.Background()
	require.NoError(t, feed.LoadFirst(ctx))

	done := make(chan error, 1)
	go func() { done <- feed.LoadMore(ctx) }()
	<-source.started

	// refresh resets the catalog while page 2 is still in flight
	source.mu.Lock()
	source.pages[1] = Page{Items: []Product{catProduct(9, "z")}, Total: 1, HasMore: false}
	source.mu.Unlock()
	require.NoError(t, feed.Refresh(ctx))

	close(source.release)
	require.NoError(t, <-done)

	snapshot := feed.Visible()
	require.Len(t, snapshot, 1, "stale page must not be appended after the reset")
	require.Equal(t, int64(9), snapshot[0].ID)
}

func TestFeedCategoriesSurviveRefresh(t *testing.T) {
	t.Parallel()

	source := newStubSource()
	source.pages[1] = Page{Items: []Product{catProduct(1, "a"), catProduct(2, "b")}, Total: 2, HasMore: false}

	feed := newTestFeed(t, source)
	ctx := context.Background()
	require.NoError(t, feed.LoadFirst(ctx))
	require.Equal(t, []string{"a", "b"}, feed.Categories())

	source.mu.Lock()
	source.pages[1] = Page{Items: []Product{catProduct(3, "c")}, Total: 1, HasMore: false}
	source.mu.Unlock()
	require.NoError(t, feed.Refresh(ctx))

	// vocabulary accumulates and is never pruned
	require.Equal(t, []string{"a", "b", "c"}, feed.Categories())
	require.Equal(t, 1, feed.Len())
}

func TestFeedFetchErrorKeepsCachedPages(t *testing.T) {
	t.Parallel()

	source := newStubSource()
	source.pages[1] = Page{Items: []Product{catProduct(1, "a")}, Total: 3, HasMore: true}
	source.errOn[2] = errors.New("connection reset")

	feed := newTestFeed(t, source)
	ctx := context.Background()
	require.NoError(t, feed.LoadFirst(ctx))

	require.Error(t, feed.LoadMore(ctx))
	require.Equal(t, 1, feed.Len(), "previously cached pages remain visible")

	// the in-flight gate is released after a failure, manual retry works
	source.mu.Lock()
	delete(source.errOn, 2)
	source.pages[2] = Page{Items: []Product{catProduct(2, "a")}, Total: 3, HasMore: true}
	source.mu.Unlock()
	require.NoError(t, feed.LoadMore(ctx))
	require.Equal(t, 2, feed.Len())
}

func TestFeedVisibleAppliesState(t *testing.T) {
	t.Parallel()

	source := newStubSource()
	source.pages[1] = Page{Items: []Product{
		catProduct(1, "a"),
		catProduct(2, "b"),
		catProduct(3, "a"),
	}, Total: 3, HasMore: false}

	feed := newTestFeed(t, source)
	require.NoError(t, feed.LoadFirst(context.Background()))

	feed.State().ToggleCategory("a")
	require.Equal(t, []int64{1, 3}, ids(feed.Visible()))

	feed.State().ResetAll()
	require.Equal(t, []int64{1, 2, 3}, ids(feed.Visible()))
}

func TestNewFeedValidatesDependencies(t *testing.T) {
	t.Parallel()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	if _, err := NewFeed(nil, logg, nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := NewFeed(newStubSource(), nil, nil); err == nil {
		t.Fatalf("expected error for nil logger")
	}
}
