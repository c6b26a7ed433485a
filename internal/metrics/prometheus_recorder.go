package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	lines            *prom.CounterVec
	transitions      *prom.CounterVec
	continuations    *prom.CounterVec
	documentDuration *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.lines = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdstream",
			Name:      "lines_total",
			Help:      "Input lines by classified signal",
		}, []string{"signal"})
		pr.transitions = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdstream",
			Name:      "transitions_total",
			Help:      "Matched state transitions by source and target state",
		}, []string{"from", "to"})
		pr.continuations = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdstream",
			Name:      "continuations_total",
			Help:      "Lines without a table entry, by state",
		}, []string{"state"})
		pr.documentDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "mdstream",
			Name:      "document_duration_seconds",
			Help:      "Time to convert one document",
			Buckets:   prom.DefBuckets,
		}, []string{"engine"})
		reg.MustRegister(pr.lines, pr.transitions, pr.continuations, pr.documentDuration)
	})
	return pr
}

func (p *PrometheusRecorder) IncLine(signal string) {
	if p == nil || p.lines == nil {
		return
	}
	p.lines.WithLabelValues(signal).Inc()
}

func (p *PrometheusRecorder) IncTransition(from, to string) {
	if p == nil || p.transitions == nil {
		return
	}
	p.transitions.WithLabelValues(from, to).Inc()
}

func (p *PrometheusRecorder) IncContinuation(state string) {
	if p == nil || p.continuations == nil {
		return
	}
	p.continuations.WithLabelValues(state).Inc()
}

func (p *PrometheusRecorder) ObserveDocumentDuration(engine string, d time.Duration) {
	if p == nil || p.documentDuration == nil {
		return
	}
	p.documentDuration.WithLabelValues(engine).Observe(d.Seconds())
}
