package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lfarias/grana/internal/handlers"
	"github.com/lfarias/grana/internal/identity"
	"github.com/lfarias/grana/internal/middleware"
)

func NewRouter(deps *handlers.Deps, verifier identity.Verifier) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).Logger)
	r.Use(middleware.NewMiddleware(verifier).Auth)

	txh := handlers.NewTransactionHandlers(deps)
	blh := handlers.NewBillHandlers(deps)
	glh := handlers.NewGoalHandlers(deps)
	smh := handlers.NewSummaryHandlers(deps)
	ssh := handlers.NewSessionHandlers(deps)

	r.Mount("/transactions", txh.TransactionRoutes())
	r.Mount("/bills", blh.BillRoutes())
	r.Mount("/goals", glh.GoalRoutes())
	r.Mount("/summary", smh.SummaryRoutes())
	r.Mount("/session", ssh.SessionRoutes())
	return r
}
