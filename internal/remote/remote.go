// Package remote is the boundary to the persistence backend. Records
// cross it as generic rows with snake_case column names; the codec in
// this package translates them to and from the entity structs.
package remote

import "context"

// Row is one stored record in backend column naming.
type Row map[string]any

// Order is a server-side sort on a single column.
type Order struct {
	Field string
	Desc  bool
}

// Collection is the per-record-kind surface the synchronized store
// consumes. The backend filters List to the authorized owner; callers
// do not re-check ownership locally.
type Collection interface {
	List(ctx context.Context, ownerID string, order Order) ([]Row, error)
	Insert(ctx context.Context, row Row) (Row, error)
	Update(ctx context.Context, id string, fields Row) error
	Delete(ctx context.Context, id string) error
}

// Backend groups the three collections the store operates on.
type Backend interface {
	Transactions() Collection
	Bills() Collection
	Goals() Collection
}
