package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/lfarias/grana/internal/identity"
	"github.com/lfarias/grana/internal/middleware"
	"github.com/lfarias/grana/internal/models"
	"github.com/lfarias/grana/internal/remote"
	"github.com/lfarias/grana/internal/response"
	"github.com/lfarias/grana/internal/store"
	"github.com/lfarias/grana/pkg/logger"
)

// memCollection is a minimal in-memory Collection for wiring a real
// store.Manager under the handlers.
type memCollection struct {
	mu   sync.Mutex
	rows []remote.Row
	seq  int
}

func (c *memCollection) List(_ context.Context, ownerID string, _ remote.Order) ([]remote.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []remote.Row
	for _, row := range c.rows {
		if row["user_id"] == ownerID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (c *memCollection) Insert(_ context.Context, row remote.Row) (remote.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	stored := remote.Row{}
	for k, v := range row {
		stored[k] = v
	}
	stored["id"] = fmt.Sprintf("srv-%d", c.seq)
	c.rows = append(c.rows, stored)
	return stored, nil
}

func (c *memCollection) Update(_ context.Context, id string, fields remote.Row) error {
	c.mu.Lock()
	defer c.mu.Unlock()
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

func (c *memCollection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.rows[:0]
	for _, row := range c.rows {
		if row["id"] != id {
			kept = append(kept, row)
		}
	}
	c.rows = kept
	return nil
}

type memBackend struct {
	txs, bills, goals *memCollection
}

func newMemBackend() *memBackend {
	return &memBackend{txs: &memCollection{}, bills: &memCollection{}, goals: &memCollection{}}
}

func (b *memBackend) Transactions() remote.Collection { return b.txs }
func (b *memBackend) Bills() remote.Collection        { return b.bills }
func (b *memBackend) Goals() remote.Collection        { return b.goals }

type fakeProfiles struct{}

func (fakeProfiles) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	return &models.Profile{UserID: userID, DisplayName: "Tester"}, nil
}

func newTestDeps(backend *memBackend) (*Deps, *store.Manager) {
	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	manager := store.NewManager(backend)
	return &Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		Stores:          manager,
		Profiles:        fakeProfiles{},
	}, manager
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.WithSession(req.Context(), identity.Session{UserID: "u1", Email: "u1@example.com"})
	return req.WithContext(ctx)
}

func TestAddTransactionEndpoint(t *testing.T) {
	backend := newMemBackend()
	deps, manager := newTestDeps(backend)
	routes := NewTransactionHandlers(deps).TransactionRoutes()

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, authedRequest(http.MethodPost, "/",
		`{"type":"expense","amount":25.9,"date":"2025-08-20","category":"Transporte","paymentMethod":"Pix","description":"bus"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"srv-1"`) {
		t.Fatalf("response missing confirmed id: %s", rec.Body)
	}

	st, err := manager.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("manager.Get error: %v", err)
	}
	txs := st.Transactions()
	if len(txs) != 1 || txs[0].ID != "srv-1" || txs[0].Description != "bus" {
		t.Fatalf("store state: %+v", txs)
	}
}

func TestAddTransactionRejectsBadPayload(t *testing.T) {
	deps, _ := newTestDeps(newMemBackend())
	routes := NewTransactionHandlers(deps).TransactionRoutes()

	cases := []string{
		`not json`,
		`{"type":"expense","amount":1,"date":"20/08/2025","category":"Casa","paymentMethod":"Pix"}`,
		`{"type":"transfer","amount":1,"date":"2025-08-20","category":"Casa","paymentMethod":"Pix"}`,
	}
	for _, body := range cases {
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, authedRequest(http.MethodPost, "/", body))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestDeleteTransactionEndpoint(t *testing.T) {
	backend := newMemBackend()
	backend.txs.rows = append(backend.txs.rows, remote.Row{
		"id": "tx-1", "user_id": "u1", "type": "expense", "amount": 10.0,
		"date": "2025-08-01", "category": "Casa", "payment_method": "Pix",
	})
	deps, manager := newTestDeps(backend)
	routes := NewTransactionHandlers(deps).TransactionRoutes()

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, authedRequest(http.MethodDelete, "/tx-1", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	st, _ := manager.Get(context.Background(), "u1")
	if len(st.Transactions()) != 0 {
		t.Fatal("transaction not deleted")
	}
}

func TestToggleBillEndpointSynthesizesExpense(t *testing.T) {
	backend := newMemBackend()
	backend.bills.rows = append(backend.bills.rows, remote.Row{
		"id": "bill-1", "user_id": "u1", "name": "Internet", "amount": 150.0,
		"due_date": int64(10), "is_recurring": true, "is_paid": false,
	})
	deps, manager := newTestDeps(backend)
	routes := NewBillHandlers(deps).BillRoutes()

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, authedRequest(http.MethodPost, "/bill-1/toggle", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	st, _ := manager.Get(context.Background(), "u1")
	if !st.Bills()[0].IsPaid {
		t.Fatal("bill not paid")
	}
	txs := st.Transactions()
	if len(txs) != 1 || !strings.Contains(txs[0].Description, "Internet") {
		t.Fatalf("synthesized transaction missing: %+v", txs)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	backend := newMemBackend()
	backend.txs.rows = append(backend.txs.rows,
		remote.Row{"id": "t1", "user_id": "u1", "type": "income", "amount": 3000.0,
			"date": "2025-08-05", "category": "Salário", "payment_method": "Pix"},
		remote.Row{"id": "t2", "user_id": "u1", "type": "expense", "amount": 100.0,
			"date": "2025-08-10", "category": "Alimentação", "payment_method": "Pix"},
	)
	deps, _ := newTestDeps(backend)
	routes := NewSummaryHandlers(deps).SummaryRoutes()

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, authedRequest(http.MethodGet, "/", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"balance":"2900"`) {
		t.Fatalf("summary body: %s", body)
	}
}

func TestGoalDepositEndpoint(t *testing.T) {
	backend := newMemBackend()
	backend.goals.rows = append(backend.goals.rows, remote.Row{
		"id": "goal-1", "user_id": "u1", "name": "Viagem", "target_amount": 5000.0,
		"current_amount": 100.0, "deadline": "2026-06-01",
	})
	deps, manager := newTestDeps(backend)
	routes := NewGoalHandlers(deps).GoalRoutes()

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, authedRequest(http.MethodPost, "/goal-1/deposit", `{"amount":50}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	st, _ := manager.Get(context.Background(), "u1")
	if got := st.Goals()[0].CurrentAmount.String(); got != "150" {
		t.Fatalf("current amount = %s, want 150", got)
	}

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, authedRequest(http.MethodPost, "/goal-1/deposit", `{"amount":-5}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("negative deposit status = %d, want 400", rec.Code)
	}
}
