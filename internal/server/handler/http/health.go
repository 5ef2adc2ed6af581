package http

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"
)

// HealthHandler reports service liveness and store reachability.
type HealthHandler struct {
	// DB is pinged on every check.
	DB *sql.DB
	// Logger records failed pings.
	Logger *zap.Logger
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.PingContext(r.Context()); err != nil {
		h.Logger.Error("health check failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
