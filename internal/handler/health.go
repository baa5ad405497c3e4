package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ServiceName is reported by GET /api/health.
const ServiceName = "api-backend"

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	db          HealthChecker
	cache       HealthChecker
	hostname    string
	environment string
	now         func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for db or cache if they are not configured.
func NewHealthHandler(db, cache HealthChecker, hostname, environment string) *HealthHandler {
	return &HealthHandler{
		db:          db,
		cache:       cache,
		hostname:    hostname,
		environment: environment,
		now:         time.Now,
	}
}

// HealthResponse represents the probe response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// APIHealthResponse is the body of GET /api/health.
type APIHealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Timestamp   string `json:"timestamp"`
	Server      string `json:"server"`
	Environment string `json:"environment"`
	DBConnected bool   `json:"db_connected"`
}

// Healthz is a liveness probe endpoint.
// It returns 200 if the server is running. No dependency checks.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is a readiness probe endpoint.
// It checks all dependencies and returns 200 only if all are healthy.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	for name, dep := range map[string]HealthChecker{"postgres": h.db, "redis": h.cache} {
		if dep == nil {
			checks[name] = "not configured"
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			checks[name] = "error: " + err.Error()
			healthy = false
			continue
		}
		checks[name] = "ok"
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{
		Status: status,
		Checks: checks,
	})
}

// APIHealth reports service status together with database reachability.
// The response is always 200; an unreachable database yields "degraded".
//
// GET /api/health
func (h *HealthHandler) APIHealth(w http.ResponseWriter, r *http.Request) {
	connected := false
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		connected = h.db.Ping(ctx) == nil
		cancel()
	}

	status := "healthy"
	if !connected {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, APIHealthResponse{
		Status:      status,
		Service:     ServiceName,
		Timestamp:   h.now().UTC().Format(time.RFC3339),
		Server:      h.hostname,
		Environment: h.environment,
		DBConnected: connected,
	})
}
