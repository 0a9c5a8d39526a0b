package application

import (
	"errors"
	"testing"
)

func TestProjectionCacheReusesValuesForRevision(t *testing.T) {
	cache := newProjectionCache(4)
	builds := 0
	build := func() ([]string, error) {
		builds++
		return []string{"row"}, nil
	}

	first, err := cachedProjection(cache, "rows", 1, build)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := cachedProjection(cache, "rows", 1, build)
	if builds != 1 {
		t.Fatalf("expected a single build for the same revision, got %d", builds)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected cached rows, got %v and %v", first, second)
	}

	cachedProjection(cache, "rows", 2, build)
	if builds != 2 {
		t.Fatalf("expected rebuild after revision change, got %d builds", builds)
	}
}

func TestProjectionCacheSkipsFailedBuilds(t *testing.T) {
	cache := newProjectionCache(4)
	failure := errors.New("snapshot failed")

	if _, err := cachedProjection(cache, "rows", 1, func() (int, error) { return 0, failure }); !errors.Is(err, failure) {
		t.Fatalf("expected build error, got %v", err)
	}
	if _, ok := cache.get("rows", 1); ok {
		t.Fatalf("expected failed build to stay out of the cache")
	}
}

func TestProjectionCacheDropsStaleRevisions(t *testing.T) {
	cache := newProjectionCache(4)
	cache.store("rows", 1, 1)
	cache.store("customers", 1, 2)
	cache.store("rows", 2, 3)

	if got := cache.len(); got != 1 {
		t.Fatalf("expected stale entries to be dropped, got %d entries", got)
	}
	if _, ok := cache.get("customers", 2); ok {
		t.Fatalf("expected miss for entry built at an older revision")
	}
}

func TestProjectionCacheEvictsWhenFull(t *testing.T) {
	cache := newProjectionCache(2)
	cache.store("a", 1, 1)
	cache.store("b", 1, 2)
	cache.store("c", 1, 3)

	if got := cache.len(); got != 2 {
		t.Fatalf("expected cache to stay at capacity, got %d entries", got)
	}
	if _, ok := cache.get("c", 1); !ok {
		t.Fatalf("expected newest entry to be kept")
	}
}

func TestProjectionCacheInvalidate(t *testing.T) {
	cache := newProjectionCache(4)
	cache.store("rows", 1, []string{"row"})
	cache.invalidate()
	if _, ok := cache.get("rows", 1); ok {
		t.Fatalf("expected cache to be empty after invalidation")
	}
}
