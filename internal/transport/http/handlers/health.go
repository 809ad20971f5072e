package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopsignal/engagement/internal/transport/http/response"
)

// HealthHandler pings the hard dependencies. Redis is optional wiring, a nil
// client is reported as "disabled" rather than failing the check.
type HealthHandler struct {
	db  *sql.DB
	rdb *redis.Client
}

func NewHealthHandler(db *sql.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{"status": "ok"}

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			checks["postgres"] = "down"
			checks["status"] = "degraded"
			status = http.StatusServiceUnavailable
		} else {
			checks["postgres"] = "up"
		}
	}

	if h.rdb == nil {
		checks["redis"] = "disabled"
	} else if err := h.rdb.Ping(ctx).Err(); err != nil {
		// Watermarks degrade gracefully without redis, stay 200.
		checks["redis"] = "down"
	} else {
		checks["redis"] = "up"
	}

	response.Data(w, status, checks)
}
