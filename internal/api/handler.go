package api

import (
	"context"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"sample-tracker-client/internal/store"
)

// Refresher reloads every collection from the remote server.
type Refresher interface {
	RefreshAll(ctx context.Context)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store     *store.Store
	refresher Refresher
	db        *gorm.DB
	webpush   *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(st *store.Store, refresher Refresher, db *gorm.DB, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:     st,
		refresher: refresher,
		db:        db,
		webpush:   webpushOptions,
	}
}
