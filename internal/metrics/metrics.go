// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, tests, etc.
type Recorder interface {
	// HTTP metrics, labelled by chi route pattern.
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)

	// Catalog read metrics, labelled by resource ("users", "products", "counts").
	ObserveList(resource string, rows int, duration time.Duration)
	IncStoreError(resource, kind string) // kind: "connection" or "query"
}
