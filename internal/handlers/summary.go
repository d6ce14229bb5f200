package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lfarias/grana/internal/middleware"
	"github.com/lfarias/grana/internal/reports"
	"github.com/lfarias/grana/internal/response"
)

type summaryHandlers struct {
	ResponseHandler response.ResponseHandler
	Stores          storeProvider
}

func NewSummaryHandlers(deps *Deps) *summaryHandlers {
	return &summaryHandlers{
		ResponseHandler: deps.ResponseHandler,
		Stores:          deps.Stores,
	}
}

func (h *summaryHandlers) SummaryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetSummary)
	return r
}

// GetSummary returns totals, balance and the category breakdown for
// the requested period (all transactions when no period is given).
func (h *summaryHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	st, err := h.Stores.Get(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	txs := st.Transactions()
	if period := r.URL.Query().Get("period"); period != "" {
		txs = reports.FilterByPeriod(txs, reports.Period(period), r.URL.Query().Get("date"), time.Now())
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, reports.BuildSummary(txs))
}
