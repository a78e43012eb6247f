package http

import (
	"net/http"
	"time"

	"github.com/stackleaf/todo/internal/todo/store"
	"github.com/stackleaf/todo/pkg/httpx"
	"github.com/stackleaf/todo/pkg/todosdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and a
//	@Description	check of the database connection
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	todosdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	todosdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &todosdk.HealthChecks{
			Database: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := todosdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
