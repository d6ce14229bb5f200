package handlers

import (
	"context"
	"log/slog"

	"github.com/lfarias/grana/internal/models"
	"github.com/lfarias/grana/internal/response"
	"github.com/lfarias/grana/internal/store"
)

// storeProvider hands out the per-user synchronized store.
type storeProvider interface {
	Get(ctx context.Context, userID string) (*store.Store, error)
	Release(ctx context.Context, userID string)
}

type profileProvider interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Stores          storeProvider
	Profiles        profileProvider
}
