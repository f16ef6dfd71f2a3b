package fetcher

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"MarketRadar/internal/domain"
)

type stubFetcher struct {
	name     string
	inflight atomic.Int32
	peak     atomic.Int32
}

func (s *stubFetcher) Name() string { return s.name }

func (s *stubFetcher) Fetch(_ context.Context, query string, _, _ time.Time) []domain.Article {
	cur := s.inflight.Add(1)
	defer s.inflight.Add(-1)
	for {
		peak := s.peak.Load()
		if cur <= peak || s.peak.CompareAndSwap(peak, cur) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)

	if strings.Contains(query, "broken") {
		return nil // never-fail contract: upstream trouble means no articles
	}
	return []domain.Article{
		{Title: query + " headline one"},
		{Stock: "pre-tagged", Title: query + " headline two"},
	}
}

func TestFetchWindowAggregatesInStockOrder(t *testing.T) {
	t.Parallel()

	stub := &stubFetcher{name: "stub"}
	reg := NewRegistry()
	reg.Register(stub)

	source := NewSource(reg, "stub", 2, nil)
	stocks := []string{"Alpha", "broken corp", "Beta"}

	articles, err := source.FetchWindow(context.Background(), stocks, time.Now().AddDate(0, 0, -7), time.Now())
	if err != nil {
		t.Fatalf("FetchWindow error: %v", err)
	}

	if len(articles) != 4 {
		t.Fatalf("expected 4 articles, got %d", len(articles))
	}
	if articles[0].Stock != "Alpha" || articles[2].Stock != "Beta" {
		t.Fatalf("articles out of stock order: %+v", articles)
	}
	// Pre-tagged stock names survive the fan-out untouched.
	if articles[1].Stock != "pre-tagged" {
		t.Fatalf("expected pre-tagged stock to be kept, got %q", articles[1].Stock)
	}

	if peak := stub.peak.Load(); peak > 2 {
		t.Fatalf("worker pool bound exceeded: peak %d", peak)
	}
}

func TestFetchWindowUnknownStrategy(t *testing.T) {
	t.Parallel()

	source := NewSource(NewRegistry(), "missing", 4, nil)
	if _, err := source.FetchWindow(context.Background(), []string{"Alpha"}, time.Now(), time.Now()); err == nil {
		t.Fatal("expected error for unregistered strategy")
	}
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	stub := &stubFetcher{name: "stub"}
	reg.Register(stub)

	got, err := reg.Resolve("stub")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != stub {
		t.Fatal("Resolve returned a different fetcher")
	}

	if _, err := reg.Resolve("nope"); err == nil {
		t.Fatal("expected error for missing fetcher")
	}
}
