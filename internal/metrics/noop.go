package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveHTTPRequest is a no-op.
func (n *NoopRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {}

// ObserveList is a no-op.
func (n *NoopRecorder) ObserveList(resource string, rows int, duration time.Duration) {}

// IncStoreError is a no-op.
func (n *NoopRecorder) IncStoreError(resource, kind string) {}
