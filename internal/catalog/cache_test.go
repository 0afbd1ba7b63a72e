package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func product(id int64) Product {
	return Product{ID: id, Title: "p", Price: decimal.NewFromInt(id)}
}

func TestCacheAppendAccumulatesWithoutDedup(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	cache.AppendPage([]Product{product(1), product(2)})
	cache.AppendPage([]Product{product(2), product(3)})

	snapshot := cache.Snapshot()
	if len(snapshot) != 4 {
		t.Fatalf("expected 4 entries including the duplicate, got %d", len(snapshot))
	}
	if snapshot[1].ID != 2 || snapshot[2].ID != 2 {
		t.Fatalf("expected duplicate id 2 preserved in arrival order, got %+v", snapshot)
	}
}

func TestCacheResetReplacesContents(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	cache.AppendPage([]Product{product(1), product(2), product(3)})
	cache.Reset([]Product{product(9)})

	if cache.Len() != 1 {
		t.Fatalf("expected 1 entry after reset, got %d", cache.Len())
	}
	if cache.Snapshot()[0].ID != 9 {
		t.Fatalf("expected reset contents to win")
	}
}

func TestCacheSnapshotIsIsolated(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	cache.AppendPage([]Product{product(1)})

	snapshot := cache.Snapshot()
	snapshot[0].ID = 42

	if cache.Snapshot()[0].ID != 1 {
		t.Fatalf("mutating a snapshot must not touch the cache")
	}
}

func TestCacheEmptySnapshot(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	if got := cache.Snapshot(); len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %d items", len(got))
	}
	if cache.Len() != 0 {
		t.Fatalf("expected zero length")
	}
}
