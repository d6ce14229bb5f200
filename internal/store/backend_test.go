package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/lfarias/grana/internal/remote"
)

// fakeCollection is an in-memory Collection with hooks to block calls
// and fault injection per operation.
type fakeCollection struct {
	mu   sync.Mutex
	rows []remote.Row
	seq  int

	listErr   error
	insertErr error
	updateErr error
	deleteErr error

	listHook   func(ownerID string)
	insertHook func()
	deleteHook func()

	listCalls   int
	insertCalls int
	deleteCalls int
	updates     []fakeUpdate
}

type fakeUpdate struct {
	id     string
	fields remote.Row
}

func (c *fakeCollection) List(_ context.Context, ownerID string, _ remote.Order) ([]remote.Row, error) {
	if c.listHook != nil {
		c.listHook(ownerID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listCalls++
	if c.listErr != nil {
		return nil, c.listErr
	}
	var out []remote.Row
	for _, row := range c.rows {
		if row["user_id"] == ownerID {
			out = append(out, cloneRow(row))
		}
	}
	return out, nil
}

func (c *fakeCollection) Insert(_ context.Context, row remote.Row) (remote.Row, error) {
	if c.insertHook != nil {
		c.insertHook()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertCalls++
	if c.insertErr != nil {
		return nil, c.insertErr
	}
	c.seq++
	stored := cloneRow(row)
	stored["id"] = fmt.Sprintf("srv-%d", c.seq)
	c.rows = append(c.rows, stored)
	return cloneRow(stored), nil
}

func (c *fakeCollection) Update(_ context.Context, id string, fields remote.Row) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updates = append(c.updates, fakeUpdate{id: id, fields: cloneRow(fields)})
	if c.updateErr != nil {
		return c.updateErr
	}
	for _, row := range c.rows {
		if row["id"] == id {
			for k, v := range fields {
				row[k] = v
			}
			return nil
		}
	}
	return fmt.Errorf("row %s not found", id)
}

func (c *fakeCollection) Delete(_ context.Context, id string) error {
	if c.deleteHook != nil {
		c.deleteHook()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteCalls++
	if c.deleteErr != nil {
		return c.deleteErr
	}
	kept := c.rows[:0]
	for _, row := range c.rows {
		if row["id"] != id {
			kept = append(kept, row)
		}
	}
	c.rows = kept
	return nil
}

func (c *fakeCollection) seed(row remote.Row) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append(c.rows, cloneRow(row))
}

func cloneRow(row remote.Row) remote.Row {
	out := make(remote.Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

type fakeBackend struct {
	txs   *fakeCollection
	bills *fakeCollection
	goals *fakeCollection
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		txs:   &fakeCollection{},
		bills: &fakeCollection{},
		goals: &fakeCollection{},
	}
}

func (b *fakeBackend) Transactions() remote.Collection { return b.txs }
func (b *fakeBackend) Bills() remote.Collection        { return b.bills }
func (b *fakeBackend) Goals() remote.Collection        { return b.goals }
