package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lfarias/grana/internal/middleware"
	"github.com/lfarias/grana/internal/response"
)

type sessionHandlers struct {
	ResponseHandler response.ResponseHandler
	Stores          storeProvider
	Profiles        profileProvider
}

func NewSessionHandlers(deps *Deps) *sessionHandlers {
	return &sessionHandlers{
		ResponseHandler: deps.ResponseHandler,
		Stores:          deps.Stores,
		Profiles:        deps.Profiles,
	}
}

func (h *sessionHandlers) SessionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetSession)
	r.Get("/profile", h.GetProfile)
	r.Delete("/", h.SignOut)
	return r
}

type sessionResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func (h *sessionHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	session := middleware.Session(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, sessionResponse{
		UserID: session.UserID,
		Email:  session.Email,
	})
}

func (h *sessionHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Profiles.GetProfile(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, profile)
}

// SignOut drops the caller's bound store so nothing of the session
// survives in memory.
func (h *sessionHandlers) SignOut(w http.ResponseWriter, r *http.Request) {
	h.Stores.Release(r.Context(), middleware.UID(r.Context()))
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
