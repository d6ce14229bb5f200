package store

import (
	"context"
	"errors"
	"sync"

	"github.com/lfarias/grana/internal/remote"
)

// Manager hands out one bound Store per user id. The HTTP layer asks
// for the caller's store on each request; the first request for a user
// triggers the initial load.
type Manager struct {
	backend remote.Backend

	mu     sync.Mutex
	stores map[string]*entry
}

type entry struct {
	store *Store

	mu    sync.Mutex
	bound bool
}

func NewManager(backend remote.Backend) *Manager {
	return &Manager{
		backend: backend,
		stores:  make(map[string]*entry),
	}
}

// Get returns the store bound to userID, binding a fresh one on first
// use. Concurrent first requests share a single initial load. A failed
// initial load still returns the store with its failed collections
// empty, but the entry stays unbound so the next request retries the
// load instead of serving the stale error.
func (m *Manager) Get(ctx context.Context, userID string) (*Store, error) {
	if userID == "" {
		return nil, errors.New("empty user id")
	}

	m.mu.Lock()
	e, ok := m.stores[userID]
	if !ok {
		e = &entry{store: New(m.backend)}
		m.stores[userID] = e
	}
	m.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.bound {
		return e.store, nil
	}
	if err := e.store.Bind(ctx, userID); err != nil {
		return e.store, err
	}
	e.bound = true
	return e.store, nil
}

// Release unbinds and drops the store for userID, discarding its
// collections. Used on sign-out.
func (m *Manager) Release(ctx context.Context, userID string) {
	m.mu.Lock()
	e, ok := m.stores[userID]
	delete(m.stores, userID)
	m.mu.Unlock()
	if ok {
		e.store.Bind(ctx, "")
	}
}

// ResetRecurringBills runs the monthly recurring-bill reset over every
// bound store. Errors are joined so one failing user does not stop the
// sweep.
func (m *Manager) ResetRecurringBills(ctx context.Context) error {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, e := range m.stores {
		stores = append(stores, e.store)
	}
	m.mu.Unlock()

	var sweepErrs []error
	for _, s := range stores {
		if err := s.ResetRecurringBills(ctx); err != nil {
			sweepErrs = append(sweepErrs, err)
		}
	}
	return errors.Join(sweepErrs...)
}
