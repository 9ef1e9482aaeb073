// Package settings holds the live planner configuration and the loaders
// that build it from a YAML file and the environment.
package settings

import (
	"fmt"
	"sync"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// View is a read-only window on live settings. Callers read Current() each
// time they derive geometry instead of keeping a copy.
type View interface {
	Current() domain.Settings
}

// Store is a View that can be changed at runtime and notifies subscribers.
type Store struct {
	mu     sync.RWMutex
	cur    domain.Settings
	subs   map[int]func(domain.Settings)
	nextID int
}

// NewStore validates the initial settings and returns a Store holding them.
func NewStore(initial domain.Settings) (*Store, error) {
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("initial settings: %w", err)
	}
	return &Store{cur: initial, subs: map[int]func(domain.Settings){}}, nil
}

// Static wraps fixed settings as a View without validation. Intended for
// tests that need to observe how invalid configuration is reported.
type Static domain.Settings

func (s Static) Current() domain.Settings { return domain.Settings(s) }

func (s *Store) Current() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Set replaces the settings. Invalid settings are rejected and the current
// value is kept.
func (s *Store) Set(next domain.Settings) error {
	if err := next.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.cur = next
	subs := make([]func(domain.Settings), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// Update applies fn to a copy of the current settings and stores the result.
func (s *Store) Update(fn func(*domain.Settings)) error {
	next := s.Current()
	fn(&next)
	return s.Set(next)
}

// Subscribe registers fn to run after every successful change. The returned
// func removes the subscription.
func (s *Store) Subscribe(fn func(domain.Settings)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
