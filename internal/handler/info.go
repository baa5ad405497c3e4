package handler

import (
	"crypto/rand"
	"net/http"
	"runtime"
	"time"

	"github.com/oklog/ulid/v2"
)

// SystemInfo describes the running process.
type SystemInfo struct {
	Server      string `json:"server"`
	GoVersion   string `json:"go_version"`
	Environment string `json:"environment"`
	Project     string `json:"project"`
	InstanceID  string `json:"instance_id"`
}

// InfoResponse is the body of GET /api/info.
type InfoResponse struct {
	System SystemInfo `json:"system"`
}

// InfoHandler serves static process information.
type InfoHandler struct {
	info SystemInfo
}

// NewInfoHandler creates an InfoHandler with a fresh instance id.
func NewInfoHandler(hostname, environment, project string) *InfoHandler {
	return &InfoHandler{
		info: SystemInfo{
			Server:      hostname,
			GoVersion:   runtime.Version(),
			Environment: environment,
			Project:     project,
			InstanceID:  ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		},
	}
}

// InstanceID identifies this process for the lifetime of the handler.
func (h *InfoHandler) InstanceID() string {
	return h.info.InstanceID
}

// Info handles GET /api/info.
func (h *InfoHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{System: h.info})
}
