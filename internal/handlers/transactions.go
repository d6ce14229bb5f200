package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lfarias/grana/internal/errs"
	"github.com/lfarias/grana/internal/middleware"
	"github.com/lfarias/grana/internal/models"
	"github.com/lfarias/grana/internal/reports"
	"github.com/lfarias/grana/internal/response"
)

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	Stores          storeProvider
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		Stores:          deps.Stores,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListTransactions)
	r.Post("/", h.AddTransaction)
	r.Delete("/{transactionId}", h.DeleteTransaction)
	return r
}

// ListTransactions returns the current snapshot, optionally filtered
// by ?period=today|7days|30days|3months|custom&date=YYYY-MM-DD.
func (h *transactionHandlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	st, err := h.Stores.Get(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	txs := st.Transactions()
	if period := r.URL.Query().Get("period"); period != "" {
		txs = reports.FilterByPeriod(txs, reports.Period(period), r.URL.Query().Get("date"), time.Now())
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, txs)
}

func (h *transactionHandlers) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var draft models.TransactionDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("malformed transaction payload"))
		return
	}
	if err := validateDate(draft.Date); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if draft.Type != models.Income && draft.Type != models.Expense {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError(`type must be "income" or "expense"`))
		return
	}

	st, err := h.Stores.Get(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	tx, err := st.AddTransaction(r.Context(), draft)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tx)
}

func (h *transactionHandlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	st, err := h.Stores.Get(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := st.DeleteTransaction(r.Context(), chi.URLParam(r, "transactionId")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return errs.NewValidationError("date must be YYYY-MM-DD")
	}
	return nil
}
