// Package metrics records conversion metrics for mdstream.
//
// Components receive a Recorder. NoopRecorder is the default and does
// nothing; PrometheusRecorder registers counters and a histogram on a
// Prometheus registry, which WriteTextFile can dump in the text exposition
// format once a run has finished.
package metrics
