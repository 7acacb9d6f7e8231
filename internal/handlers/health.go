package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type HealthHandler struct {
	db  Pinger
	log *zap.SugaredLogger
}

func NewHealthHandler(db Pinger, log *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// HandleHealth always answers 200; a failed database ping reports degraded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Health.HandleHealth"

	status := "ok"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.log.Warnw("database ping failed", "op", op, "error", err)
			status = "degraded"
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}
