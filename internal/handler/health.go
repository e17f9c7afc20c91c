package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/templui/goalnote/internal/ctxkeys"
	"github.com/templui/goalnote/internal/render"
)

type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status string `json:"status"`
	App    string `json:"app,omitempty"`
	Env    string `json:"env,omitempty"`
}

// Healthz reports whether the database answers within a couple of seconds.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if cfg := ctxkeys.Config(r.Context()); cfg != nil {
		resp.App = cfg.AppName
		resp.Env = cfg.AppEnv
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	err := h.db.PingContext(ctx)
	if err != nil {
		slog.Error("health check failed", "error", err)
		resp.Status = "unavailable"
		render.JSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *HealthHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	render.Detail(w, http.StatusNotFound, "Not found")
}
