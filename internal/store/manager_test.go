package store

import (
	"errors"
	"testing"
	"time"

	"github.com/lfarias/grana/pkg/helpers"
)

func TestManagerBindsOncePerUser(t *testing.T) {
	backend := newFakeBackend()
	seedUser(backend, "u1")
	m := NewManager(backend)
	ctx := helpers.TestCtx()

	first, err := m.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	second, err := m.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("second Get error: %v", err)
	}
	if first != second {
		t.Fatal("manager returned different stores for the same user")
	}
	if backend.txs.listCalls != 1 {
		t.Fatalf("initial load ran %d times, want 1", backend.txs.listCalls)
	}
	if len(first.Transactions()) != 2 {
		t.Fatal("store not loaded")
	}
}

func TestManagerRetriesBindAfterFailure(t *testing.T) {
	backend := newFakeBackend()
	seedUser(backend, "u1")
	backend.txs.listErr = errors.New("backend unavailable")
	m := NewManager(backend)
	ctx := helpers.TestCtx()

	if _, err := m.Get(ctx, "u1"); err == nil {
		t.Fatal("expected error from failed initial load")
	}

	// Backend recovers; the next request must reload instead of
	// serving the stale error.
	backend.txs.mu.Lock()
	backend.txs.listErr = nil
	backend.txs.mu.Unlock()

	s, err := m.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get after recovery error: %v", err)
	}
	if len(s.Transactions()) != 2 {
		t.Fatal("store not loaded after recovery")
	}
	if backend.txs.listCalls != 2 {
		t.Fatalf("list calls = %d, want 2", backend.txs.listCalls)
	}

	// A healthy bind is not repeated.
	if _, err := m.Get(ctx, "u1"); err != nil {
		t.Fatalf("third Get error: %v", err)
	}
	if backend.txs.listCalls != 2 {
		t.Fatalf("healthy store was rebound: %d list calls", backend.txs.listCalls)
	}
}

func TestManagerRejectsEmptyUser(t *testing.T) {
	m := NewManager(newFakeBackend())
	if _, err := m.Get(helpers.TestCtx(), ""); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestManagerReleaseClearsStore(t *testing.T) {
	backend := newFakeBackend()
	seedUser(backend, "u1")
	m := NewManager(backend)
	ctx := helpers.TestCtx()

	s, err := m.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	m.Release(ctx, "u1")

	if len(s.Transactions()) != 0 || s.UserID() != "" {
		t.Fatal("released store kept its data")
	}

	// A later Get binds a fresh store.
	again, err := m.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get after release error: %v", err)
	}
	if again == s {
		t.Fatal("released store instance was reused")
	}
	if len(again.Transactions()) != 2 {
		t.Fatal("fresh store not loaded")
	}
}

func TestManagerResetSweepCoversBoundStores(t *testing.T) {
	backend := newFakeBackend()
	backend.bills.seed(map[string]any{
		"id": "b1", "user_id": "u1", "name": "Aluguel", "amount": 1200.0,
		"due_date": int64(5), "is_recurring": true, "is_paid": true, "paid_date": "2025-07",
	})
	m := NewManager(backend)
	ctx := helpers.TestCtx()

	s, err := m.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	s.now = func() time.Time { return testNow }

	if err := m.ResetRecurringBills(ctx); err != nil {
		t.Fatalf("sweep error: %v", err)
	}
	if s.Bills()[0].IsPaid {
		t.Fatal("sweep did not reset the stale recurring bill")
	}
}
