package middleware

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// CORSConfig holds CORS configuration options.
type CORSConfig struct {
	// AllowedOrigins lists exact origins, "*" for any origin, or
	// "*.example.com" for any subdomain of example.com.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	// MaxAge is sent as Access-Control-Max-Age, in seconds.
	MaxAge int
}

// DefaultCORSConfig returns defaults for a read-only API. No origin is
// allowed until AllowedOrigins is set.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		MaxAge:         86400,
	}
}

// corsPolicy is CORSConfig compiled once at startup.
type corsPolicy struct {
	anyOrigin  bool
	exact      map[string]bool
	subdomains []string // ".example.com"

	methods string
	headers string
	exposed string
	maxAge  string
}

func newCORSPolicy(cfg CORSConfig) *corsPolicy {
	p := &corsPolicy{
		exact:   make(map[string]bool, len(cfg.AllowedOrigins)),
		methods: strings.Join(cfg.AllowedMethods, ", "),
		headers: strings.Join(cfg.AllowedHeaders, ", "),
		exposed: strings.Join(cfg.ExposedHeaders, ", "),
	}
	if cfg.MaxAge > 0 {
		p.maxAge = strconv.Itoa(cfg.MaxAge)
	}

	for _, origin := range cfg.AllowedOrigins {
		origin = strings.ToLower(strings.TrimSpace(origin))
		switch {
		case origin == "*":
			p.anyOrigin = true
		case strings.HasPrefix(origin, "*."):
			p.subdomains = append(p.subdomains, origin[1:])
		case origin != "":
			p.exact[origin] = true
		}
	}
	return p
}

func (p *corsPolicy) allows(origin string) bool {
	if p.anyOrigin {
		return true
	}
	origin = strings.ToLower(origin)
	if p.exact[origin] {
		return true
	}
	if len(p.subdomains) == 0 {
		return false
	}

	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	host := u.Hostname()
	for _, suffix := range p.subdomains {
		if strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
			return true
		}
	}
	return false
}

// CORS returns a middleware that handles Cross-Origin Resource Sharing.
// Preflight requests are answered here and never reach the router.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	policy := newCORSPolicy(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			preflight := r.Method == http.MethodOptions

			if !policy.allows(origin) {
				if preflight {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				// The browser withholds the response without an allow header.
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			if policy.anyOrigin {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			if policy.exposed != "" {
				h.Set("Access-Control-Expose-Headers", policy.exposed)
			}

			if !preflight {
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Methods", policy.methods)
			h.Set("Access-Control-Allow-Headers", policy.headers)
			if policy.maxAge != "" {
				h.Set("Access-Control-Max-Age", policy.maxAge)
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
