package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/threetier/catalogapi/internal/metrics"
	"github.com/threetier/catalogapi/internal/middleware"
	"github.com/threetier/catalogapi/internal/model"
	"github.com/threetier/catalogapi/internal/repository"
)

// Counter reports the row count of each catalog table.
type Counter func(ctx context.Context) (model.TableCounts, error)

// DiagnosticsHandler serves the smoke-test endpoints used to check a
// deployment end to end.
type DiagnosticsHandler struct {
	count    Counter
	database string
	hostname string
	logger   *slog.Logger
	metrics  metrics.Recorder
	now      func() time.Time
}

// NewDiagnosticsHandler creates a DiagnosticsHandler. database is the
// database name reported by DBTest. A nil recorder disables metrics.
func NewDiagnosticsHandler(count Counter, database, hostname string, logger *slog.Logger, recorder metrics.Recorder) *DiagnosticsHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &DiagnosticsHandler{
		count:    count,
		database: database,
		hostname: hostname,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
	}
}

// PingResponse is the body of GET /api/test.
type PingResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Service   string `json:"service"`
	Server    string `json:"server"`
	Timestamp string `json:"timestamp"`
}

// DatabaseSummary names the database and its table sizes.
type DatabaseSummary struct {
	Name string `json:"name"`
	model.TableCounts
}

// DBTestResponse is the body of GET /api/db-test. Database is omitted on
// failure.
type DBTestResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Server   string           `json:"server"`
	Database *DatabaseSummary `json:"database,omitempty"`
}

// Test reports that the API process is serving requests. It touches no
// dependency.
//
// GET /api/test
func (h *DiagnosticsHandler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PingResponse{
		Status:    "success",
		Message:   "Backend API is working",
		Service:   ServiceName,
		Server:    h.hostname,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// DBTest counts the rows of each table to prove the database is reachable
// and the schema is in place. 500 on any store failure; the driver error is
// logged, not returned.
//
// GET /api/db-test
func (h *DiagnosticsHandler) DBTest(w http.ResponseWriter, r *http.Request) {
	counts, err := h.count(r.Context())
	if err != nil {
		kind := repository.Kind(err)
		if kind == "" {
			kind = "unknown"
		}
		h.metrics.IncStoreError("counts", kind)
		h.logger.Error("db_test_failed",
			"kind", kind,
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeJSON(w, http.StatusInternalServerError, DBTestResponse{
			Status:  "error",
			Message: "Database connection failed",
			Server:  h.hostname,
		})
		return
	}

	writeJSON(w, http.StatusOK, DBTestResponse{
		Status:  "success",
		Message: "Database connection OK",
		Server:  h.hostname,
		Database: &DatabaseSummary{
			Name:        h.database,
			TableCounts: counts,
		},
	})
}
