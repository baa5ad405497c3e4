package middleware

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// writeError writes the same {"error": message} body the handlers use.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
