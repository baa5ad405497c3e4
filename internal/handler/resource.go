package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/threetier/catalogapi/internal/metrics"
	"github.com/threetier/catalogapi/internal/middleware"
	"github.com/threetier/catalogapi/internal/repository"
)

// Lister loads every record of one collection. It either returns the full
// result set or an error, never both.
type Lister[T any] func(ctx context.Context) ([]T, error)

// ResourceHandler serves a read-only collection as a JSON array.
type ResourceHandler[T any] struct {
	resource string
	list     Lister[T]
	logger   *slog.Logger
	metrics  metrics.Recorder
}

// NewResourceHandler creates a handler for the named collection.
// A nil recorder disables metrics.
func NewResourceHandler[T any](resource string, list Lister[T], logger *slog.Logger, recorder metrics.Recorder) *ResourceHandler[T] {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ResourceHandler[T]{
		resource: resource,
		list:     list,
		logger:   logger,
		metrics:  recorder,
	}
}

// List handles GET /api/{resource}.
// 200 with every row as a JSON array, or 500 with {"error": message}.
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	records, err := h.list(r.Context())
	if err != nil {
		kind := repository.Kind(err)
		if kind == "" {
			kind = "unknown"
		}
		h.metrics.IncStoreError(h.resource, kind)
		h.logger.Error("list_failed",
			"resource", h.resource,
			"kind", kind,
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if records == nil {
		records = []T{}
	}

	h.metrics.ObserveList(h.resource, len(records), time.Since(start))
	h.logger.Debug("list_served",
		"resource", h.resource,
		"rows", len(records),
	)

	writeJSON(w, http.StatusOK, records)
}
