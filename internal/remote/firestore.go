package remote

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lfarias/grana/internal/errs"
)

// firestoreBackend stores each record kind in a top-level collection,
// one document per row, document ID doubling as the row id.
type firestoreBackend struct {
	transactions *firestoreCollection
	bills        *firestoreCollection
	goals        *firestoreCollection
}

func NewFirestoreBackend(client *firestore.Client) *firestoreBackend {
	return &firestoreBackend{
		transactions: &firestoreCollection{coll: client.Collection("transactions")},
		bills:        &firestoreCollection{coll: client.Collection("bills")},
		goals:        &firestoreCollection{coll: client.Collection("goals")},
	}
}

func (b *firestoreBackend) Transactions() Collection { return b.transactions }
func (b *firestoreBackend) Bills() Collection        { return b.bills }
func (b *firestoreBackend) Goals() Collection        { return b.goals }

type firestoreCollection struct {
	coll *firestore.CollectionRef
}

func (c *firestoreCollection) List(ctx context.Context, ownerID string, order Order) ([]Row, error) {
	dir := firestore.Asc
	if order.Desc {
		dir = firestore.Desc
	}
	q := c.coll.Where("user_id", "==", ownerID)
	if order.Field != "" {
		q = q.OrderBy(order.Field, dir)
	}

	var rows []Row
	it := q.Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list "+c.coll.ID, err)
		}
		rows = append(rows, snapshotRow(doc))
	}
	return rows, nil
}

func (c *firestoreCollection) Insert(ctx context.Context, row Row) (Row, error) {
	ref := c.coll.NewDoc()

	data := make(map[string]any, len(row)+1)
	for k, v := range row {
		if k == "id" {
			continue
		}
		data[k] = v
	}
	// created_at drives the goals list order and is useful everywhere.
	data["created_at"] = time.Now()

	if _, err := ref.Set(ctx, data); err != nil {
		return nil, errs.NewDatabaseError("create", "failed to insert into "+c.coll.ID, err)
	}

	// Read back so callers get the stored record, not the request.
	snap, err := ref.Get(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to read back inserted row", err)
	}
	return snapshotRow(snap), nil
}

func (c *firestoreCollection) Update(ctx context.Context, id string, fields Row) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	if _, err := c.coll.Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError(c.coll.ID + " row not found")
		}
		return errs.NewDatabaseError("update", "failed to update "+c.coll.ID, err)
	}
	return nil
}

func (c *firestoreCollection) Delete(ctx context.Context, id string) error {
	if _, err := c.coll.Doc(id).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete from "+c.coll.ID, err)
	}
	return nil
}

func snapshotRow(doc *firestore.DocumentSnapshot) Row {
	row := Row(doc.Data())
	row["id"] = doc.Ref.ID
	return row
}
