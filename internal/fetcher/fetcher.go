package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"MarketRadar/internal/domain"
	"MarketRadar/internal/ports"
)

// Fetcher captures a single news-source strategy (Google News, a direct RSS
// feed, etc.). Fetch never fails: any upstream problem degrades to an empty
// slice so one broken stock query cannot sink a whole refresh cycle.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, query string, start, end time.Time) []domain.Article
}

// Registry keeps a mapping from fetcher names to their implementations.
type Registry struct {
	fetchers map[string]Fetcher
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{fetchers: map[string]Fetcher{}}
}

// Register adds or replaces a fetcher implementation.
func (r *Registry) Register(f Fetcher) {
	if r.fetchers == nil {
		r.fetchers = map[string]Fetcher{}
	}
	r.fetchers[f.Name()] = f
}

// Resolve returns a fetcher by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Fetcher, error) {
	if f, ok := r.fetchers[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("fetcher %s is not registered", name)
}

// Source fans one query per stock out through a bounded worker pool and
// aggregates the results in stock order.
type Source struct {
	registry *Registry
	strategy string
	workers  int
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*Source)(nil)

// NewSource wires the registry with the configured strategy and pool bound.
func NewSource(reg *Registry, strategy string, workers int, log *slog.Logger) *Source {
	if workers <= 0 {
		workers = 8
	}
	return &Source{
		registry: reg,
		strategy: strategy,
		workers:  workers,
		logger:   log,
	}
}

// FetchWindow runs every stock query concurrently (bounded) and returns the
// flattened article list in stock order. The result is complete before the
// caller builds the corroboration index; scoring must not start earlier.
func (s *Source) FetchWindow(ctx context.Context, stocks []string, start, end time.Time) ([]domain.Article, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("fetcher registry is not configured")
	}

	strategy, err := s.registry.Resolve(s.strategy)
	if err != nil {
		return nil, err
	}

	s.debug("fetch window", "stocks", len(stocks), "workers", s.workers,
		"start", start.Format("2006-01-02"), "end", end.Format("2006-01-02"))

	perStock := make([][]domain.Article, len(stocks))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, stock := range stocks {
		wg.Add(1)
		go func(i int, stock string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results := strategy.Fetch(ctx, stock, start, end)
			for j := range results {
				if results[j].Stock == "" {
					results[j].Stock = stock
				}
			}
			perStock[i] = results
			s.debug("stock fetched", "stock", stock, "count", len(results))
		}(i, stock)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch window: %w", err)
	}

	var aggregated []domain.Article
	for _, articles := range perStock {
		aggregated = append(aggregated, articles...)
	}

	s.debug("fetch window done", "total_articles", len(aggregated))
	return aggregated, nil
}

func (s *Source) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
