package api

import (
	"context"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"eldercare-backend/internal/chat"
	"eldercare-backend/internal/clock"
	"eldercare-backend/internal/meds"
	"eldercare-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store     store.Store
	meds      *meds.Service
	hub       *chat.Hub
	clk       clock.Clock
	webpush   *webpush.Options
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, medsSvc *meds.Service, hub *chat.Hub, clk clock.Clock, webpushOptions *webpush.Options, jwtSecret []byte, tokenTTL time.Duration) *Handler {
	return &Handler{
		store:     s,
		meds:      medsSvc,
		hub:       hub,
		clk:       clk,
		webpush:   webpushOptions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// audit records a mutating action without failing the request on error.
func (h *Handler) audit(actorUserID int64, action, entity, entityID string) {
	// Audit rows feed the care-team activity aggregation; losing one is
	// preferable to failing the user's request.
	_ = h.store.RecordAudit(context.Background(), &actorUserID, action, entity, entityID)
}
