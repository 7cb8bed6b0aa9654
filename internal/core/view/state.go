// Package view holds the client-side cache of the inventory and the active
// search query. Snapshots are swapped wholesale, never merged.
package view

import (
	"sync"

	"github.com/rl1809/inventory-tracker/internal/core/domain"
)

type State struct {
	mu    sync.RWMutex
	items []domain.Item
	query string
	err   error
}

func NewState() *State {
	return &State{}
}

func (s *State) Replace(items []domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]domain.Item(nil), items...)
	s.err = nil
}

// Sync applies the outcome of a store operation. On failure the previous
// snapshot stays in place and the error is kept for display.
func (s *State) Sync(items []domain.Item, err error) error {
	if err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return err
	}

	s.Replace(items)
	return nil
}

func (s *State) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

func (s *State) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

func (s *State) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *State) Items() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Item(nil), s.items...)
}

func (s *State) Visible() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Filter(s.items, s.query)
}
