// Package watchlist holds the session-scoped watchlist and manually entered
// upcoming events. Process-lifetime only: nothing here survives a restart.
package watchlist

import (
	"sort"
	"sync"

	"MarketRadar/internal/domain"
)

// Store is a mutex-guarded in-memory watchlist. Safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	stocks map[string]struct{}
	events []domain.UpcomingEvent
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{stocks: map[string]struct{}{}}
}

// Add puts a stock on the watchlist; re-adding is a no-op.
func (s *Store) Add(stock string) {
	if stock == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks[stock] = struct{}{}
}

// Remove drops a stock from the watchlist.
func (s *Store) Remove(stock string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stocks, stock)
}

// Contains reports watchlist membership.
func (s *Store) Contains(stock string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.stocks[stock]
	return ok
}

// Stocks returns the watchlist sorted for stable display.
func (s *Store) Stocks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.stocks))
	for stock := range s.stocks {
		out = append(out, stock)
	}
	sort.Strings(out)
	return out
}

// AddEvent records a manual calendar entry. The date stays opaque text;
// upstream formats are too inconsistent to parse.
func (s *Store) AddEvent(ev domain.UpcomingEvent) {
	if ev.Stock == "" && ev.Label == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// Events returns a copy of all recorded events in insertion order.
func (s *Store) Events() []domain.UpcomingEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.UpcomingEvent, len(s.events))
	copy(out, s.events)
	return out
}
