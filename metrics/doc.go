// Package metrics records pipeline measurements.
//
// Recorder is the interface the pipeline calls; Nop discards everything and
// Prometheus keeps the values in a prometheus.Registry. A batch run has no
// scrape endpoint, so the registry is exported once at the end with
// WriteTextfile (node_exporter textfile collector) or Push (Pushgateway).
package metrics
