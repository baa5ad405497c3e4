// Package handler provides HTTP request handlers.
package handler

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// Endpoint describes one route listed by the index handler.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Handler serves the static routes that need no dependencies.
type Handler struct {
	endpoints []Endpoint
	hostname  string
}

// New creates a new Handler instance listing the given endpoints at GET /.
func New(endpoints []Endpoint, hostname string) *Handler {
	return &Handler{endpoints: endpoints, hostname: hostname}
}

// IndexResponse is the body of GET /.
type IndexResponse struct {
	Message   string     `json:"message"`
	Server    string     `json:"server"`
	Endpoints []Endpoint `json:"endpoints"`
}

// Index lists the available endpoints.
// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	endpoints := h.endpoints
	if endpoints == nil {
		endpoints = []Endpoint{}
	}
	writeJSON(w, http.StatusOK, IndexResponse{
		Message:   "Welcome to the catalog API",
		Server:    h.hostname,
		Endpoints: endpoints,
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encode failure only means the client went away.
	_ = json.NewEncoder(w).Encode(data)
}
