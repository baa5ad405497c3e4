package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/threetier/catalogapi/internal/handler"
	"github.com/threetier/catalogapi/internal/metrics"
	"github.com/threetier/catalogapi/internal/middleware"
	"github.com/threetier/catalogapi/internal/model"
)

// Catalog is the read side of the store.
type Catalog interface {
	Ping(ctx context.Context) error
	ListUsers(ctx context.Context) ([]model.User, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	Counts(ctx context.Context) (model.TableCounts, error)
}

// RouterDeps carries everything NewRouter wires into the route table.
type RouterDeps struct {
	Logger      *slog.Logger
	Catalog     Catalog
	Cache       handler.HealthChecker // optional
	RateLimiter middleware.IPRateLimiter
	Recorder    metrics.Recorder
	Gatherer    prometheus.Gatherer // nil leaves /metrics unmounted

	Hostname     string
	Environment  string
	Project      string
	DatabaseName string

	CORS      middleware.CORSConfig
	Security  middleware.SecurityConfig
	RateLimit middleware.RateLimitConfig
}

// Endpoints lists the public routes, as reported by GET /.
var Endpoints = []handler.Endpoint{
	{Method: http.MethodGet, Path: "/api/users", Description: "List all users"},
	{Method: http.MethodGet, Path: "/api/products", Description: "List all products"},
	{Method: http.MethodGet, Path: "/api/health", Description: "Service health and database connectivity"},
	{Method: http.MethodGet, Path: "/api/info", Description: "Process information"},
	{Method: http.MethodGet, Path: "/api/test", Description: "API smoke test"},
	{Method: http.MethodGet, Path: "/api/db-test", Description: "Database smoke test with table counts"},
}

// NewRouter builds the chi route table.
func NewRouter(deps RouterDeps) *chi.Mux {
	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	h := handler.New(Endpoints, deps.Hostname)
	health := handler.NewHealthHandler(deps.Catalog, deps.Cache, deps.Hostname, deps.Environment)
	info := handler.NewInfoHandler(deps.Hostname, deps.Environment, deps.Project)
	diagnostics := handler.NewDiagnosticsHandler(deps.Catalog.Counts, deps.DatabaseName, deps.Hostname, deps.Logger, recorder)
	users := handler.NewResourceHandler[model.User]("users", deps.Catalog.ListUsers, deps.Logger, recorder)
	products := handler.NewResourceHandler[model.Product]("products", deps.Catalog.ListProducts, deps.Logger, recorder)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.Security(deps.Security))
	r.Use(middleware.CORS(deps.CORS))
	r.Use(middleware.Metrics(recorder))

	// Probes
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/", h.Index)

	rateLimitCfg := deps.RateLimit
	rateLimitCfg.Logger = deps.Logger
	rateLimitCfg.Limiter = deps.RateLimiter

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimitIP(rateLimitCfg))

		r.Get("/users", users.List)
		r.Get("/products", products.List)
		r.Get("/health", health.APIHealth)
		r.Get("/info", info.Info)
		r.Get("/test", diagnostics.Test)
		r.Get("/db-test", diagnostics.DBTest)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
