package middleware

import (
	"net/http"
	"strconv"
	"time"
)

const defaultHSTSMaxAge = 365 * 24 * time.Hour

// SecurityConfig holds configuration for security headers.
type SecurityConfig struct {
	// IsDevelopment disables HSTS so plain-http local setups keep working.
	IsDevelopment bool
	// HSTSMaxAge defaults to one year.
	HSTSMaxAge time.Duration
}

// headers returns the fixed set applied to every response. Responses are
// JSON read from a live table, so nothing may be framed or cached.
func (c SecurityConfig) headers() [][2]string {
	h := [][2]string{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "no-referrer"},
		{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
		{"Cache-Control", "no-store"},
	}
	if !c.IsDevelopment {
		maxAge := c.HSTSMaxAge
		if maxAge <= 0 {
			maxAge = defaultHSTSMaxAge
		}
		h = append(h, [2]string{"Strict-Transport-Security", "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + "; includeSubDomains"})
	}
	return h
}

// Security returns a middleware that applies security headers to all responses.
func Security(cfg SecurityConfig) func(http.Handler) http.Handler {
	headers := cfg.headers()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, kv := range headers {
				w.Header().Set(kv[0], kv[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}
