package api

import (
	"context"
	"net/http"

	"fxdesk/internal/service"
)

// ReadyResponse represents the readiness response
type ReadyResponse struct {
	Status    string              `json:"status" example:"ready"`
	Ingestion service.IngestStats `json:"ingestion"`
}

// Dependency is a backing service checked by /readyz.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

// HandleHealthz godoc
// @Summary Health check (liveness)
// @Description Always returns 200 OK if the service is running. Used for liveness probes.
// @Tags health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("OK"))
	}
}

// HandleReadyz godoc
// @Summary Readiness check
// @Description Pings the quote store and, when configured, the session and queue Redis instances. Also reports process-lifetime ingestion counters.
// @Tags health
// @Produce json
// @Success 200 {object} ReadyResponse "All dependencies ready"
// @Failure 503 {object} ErrorResponse "At least one dependency unavailable"
// @Router /readyz [get]
func HandleReadyz(svc service.RateServiceInterface, deps ...Dependency) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, dep := range deps {
			if err := dep.Ping(r.Context()); err != nil {
				writeError(w, http.StatusServiceUnavailable, "not_ready", dep.Name+" not ready")
				return
			}
		}

		writeJSON(w, http.StatusOK, ReadyResponse{Status: "ready", Ingestion: svc.Stats()})
	}
}
