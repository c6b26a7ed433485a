package metrics

import "time"

// Recorder defines observability hooks for line conversion. Implementations
// may forward to Prometheus or any other backend.
type Recorder interface {
	IncLine(signal string)
	IncTransition(from, to string)
	IncContinuation(state string)
	ObserveDocumentDuration(engine string, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncLine(string)                                {}
func (NoopRecorder) IncTransition(string, string)                  {}
func (NoopRecorder) IncContinuation(string)                        {}
func (NoopRecorder) ObserveDocumentDuration(string, time.Duration) {}
