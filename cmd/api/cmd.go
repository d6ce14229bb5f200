package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/lfarias/grana/internal/bootstrap"
	"github.com/lfarias/grana/internal/config"
	"github.com/lfarias/grana/internal/handlers"
	"github.com/lfarias/grana/internal/identity"
	"github.com/lfarias/grana/internal/remote"
	"github.com/lfarias/grana/internal/response"
	"github.com/lfarias/grana/internal/router"
	"github.com/lfarias/grana/internal/store"
	"github.com/lfarias/grana/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// remote backend + per-user stores
	backend := remote.NewFirestoreBackend(bs.Firestore)
	stores := store.NewManager(backend)

	// identity
	verifier := identity.NewFirebaseVerifier(bs.Firebase)
	profiles := identity.NewProfileStore(bs.Firestore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Stores = stores
	deps.Profiles = profiles

	// nightly sweep flipping recurring bills back to unpaid when the
	// month rolls over
	sched := cron.New()
	_, err = sched.AddFunc("30 3 * * *", func() {
		ctx := logger.ToContext(context.Background(), bs.Log)
		if err := stores.ResetRecurringBills(ctx); err != nil {
			bs.Log.Error("recurring bill sweep failed", "error", err)
		}
	})
	exitOnError("cron setup failed", err, bs.Log)
	sched.Start()
	defer sched.Stop()

	// router
	r := router.NewRouter(deps, verifier)
	bs.Log.Info("listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
