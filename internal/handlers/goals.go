package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lfarias/grana/internal/errs"
	"github.com/lfarias/grana/internal/middleware"
	"github.com/lfarias/grana/internal/models"
	"github.com/lfarias/grana/internal/reports"
	"github.com/lfarias/grana/internal/response"
)

type goalHandlers struct {
	ResponseHandler response.ResponseHandler
	Stores          storeProvider
}

func NewGoalHandlers(deps *Deps) *goalHandlers {
	return &goalHandlers{
		ResponseHandler: deps.ResponseHandler,
		Stores:          deps.Stores,
	}
}

func (h *goalHandlers) GoalRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListGoals)
	r.Post("/", h.AddGoal)
	r.Get("/progress", h.GoalProgress)
	r.Post("/{goalId}/deposit", h.Deposit)
	return r
}

type createGoalRequest struct {
	models.GoalDraft
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
}

type depositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *goalHandlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	st, err := h.Stores.Get(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, st.Goals())
}

func (h *goalHandlers) AddGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("malformed goal payload"))
		return
	}
	if req.TargetAmount.Sign() <= 0 {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("targetAmount must be positive"))
		return
	}
	if req.InitialDeposit.Sign() < 0 {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("initialDeposit must not be negative"))
		return
	}

	st, err := h.Stores.Get(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	goal, err := st.AddGoal(r.Context(), req.GoalDraft, req.InitialDeposit)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, goal)
}

func (h *goalHandlers) Deposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("malformed deposit payload"))
		return
	}
	if req.Amount.Sign() <= 0 {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("amount must be positive"))
		return
	}

	st, err := h.Stores.Get(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := st.UpdateGoalProgress(r.Context(), chi.URLParam(r, "goalId"), req.Amount); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, st.Goals())
}

func (h *goalHandlers) GoalProgress(w http.ResponseWriter, r *http.Request) {
	st, err := h.Stores.Get(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, reports.BuildGoalReports(st.Goals(), time.Now()))
}
