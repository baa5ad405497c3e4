package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler_Index(t *testing.T) {
	h := New([]Endpoint{
		{Method: http.MethodGet, Path: "/api/users", Description: "List users"},
		{Method: http.MethodGet, Path: "/api/products", Description: "List products"},
	}, "web-1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.Index(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response IndexResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Message == "" {
		t.Error("expected a welcome message")
	}
	if response.Server != "web-1" {
		t.Errorf("expected server web-1, got %q", response.Server)
	}
	if len(response.Endpoints) != 2 || response.Endpoints[1].Path != "/api/products" {
		t.Errorf("unexpected endpoints: %+v", response.Endpoints)
	}
}

func TestHandler_IndexWithoutEndpoints(t *testing.T) {
	rec := httptest.NewRecorder()
	New(nil, "").Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(rec.Body.String(), `"endpoints":[]`) {
		t.Errorf("expected empty endpoint array, got %s", rec.Body.String())
	}
}

func TestHandler_NotFound(t *testing.T) {
	h := New(nil, "")

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	rec := httptest.NewRecorder()

	h.NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["error"] != "resource not found" {
		t.Errorf("unexpected error message: %s", response["error"])
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := New(nil, "")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	h.MethodNotAllowed(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["error"] != "method not allowed" {
		t.Errorf("unexpected error message: %s", response["error"])
	}
}
