package http

import (
	"net/http"
	"time"

	"github.com/republichq/republic/internal/republic/store"
	"github.com/republichq/republic/pkg/httpx"
	"github.com/republichq/republic/pkg/republicsdk"
	"github.com/republichq/republic/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Pings the database; 503 while it is unreachable
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	republicsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	republicsdk.ErrorResponse	"database unreachable"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Warn("readiness check failed", "err", err)
			httpx.WriteError(w, http.StatusServiceUnavailable, "not_ready", "database unreachable")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, republicsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  &republicsdk.HealthChecks{Database: "ok"},
		})
	}
}
