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

type billHandlers struct {
	ResponseHandler response.ResponseHandler
	Stores          storeProvider
}

func NewBillHandlers(deps *Deps) *billHandlers {
	return &billHandlers{
		ResponseHandler: deps.ResponseHandler,
		Stores:          deps.Stores,
	}
}

func (h *billHandlers) BillRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListBills)
	r.Post("/", h.AddBill)
	r.Get("/overview", h.BillsOverview)
	r.Post("/{billId}/toggle", h.ToggleBillPaid)
	return r
}

func (h *billHandlers) ListBills(w http.ResponseWriter, r *http.Request) {
	st, err := h.Stores.Get(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, st.Bills())
}

func (h *billHandlers) AddBill(w http.ResponseWriter, r *http.Request) {
	var draft models.BillDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("malformed bill payload"))
		return
	}
	if draft.DueDate < 1 || draft.DueDate > 31 {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("dueDate must be a day of month between 1 and 31"))
		return
	}

	st, err := h.Stores.Get(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	bill, err := st.AddBill(r.Context(), draft)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, bill)
}

// ToggleBillPaid flips the paid flag. Paying also records the matching
// expense transaction; the response carries the updated bill list so
// clients refresh both panes in one round trip.
func (h *billHandlers) ToggleBillPaid(w http.ResponseWriter, r *http.Request) {
	st, err := h.Stores.Get(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := st.ToggleBillPaid(r.Context(), chi.URLParam(r, "billId")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, st.Bills())
}

func (h *billHandlers) BillsOverview(w http.ResponseWriter, r *http.Request) {
	st, err := h.Stores.Get(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, reports.BuildBillsOverview(st.Bills(), time.Now()))
}
