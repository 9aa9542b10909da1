package handlers

import (
	"log/slog"
	"net/http"

	"github.com/betterscore/scoreboard-service/internal/filesync"
	"github.com/betterscore/scoreboard-service/internal/scoreboard"
)

// Handler wires HTTP routes to the scoreboard controller.
type Handler struct {
	ctrl     *scoreboard.Controller
	logger   *slog.Logger
	statusFn func() filesync.Status
}

// NewHandler constructs a Handler. statusFn feeds /ready and may be nil.
func NewHandler(ctrl *scoreboard.Controller, logger *slog.Logger, statusFn func() filesync.Status) *Handler {
	return &Handler{
		ctrl:     ctrl,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the overlay files are being written successfully.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// State returns the current game state as JSON.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.State(), h.logger)
}

// NotFound is the JSON 404 for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed is the JSON 405 for known routes hit with the wrong verb.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}
