// Package metrics exports reactive core counters to Prometheus.
//
// A Recorder is passed to reactive.NewObserver (for property, registration,
// write and notify counters) and to watchers through
// reactive.WithWatcherRecorder (for watcher counters):
//
//	rec := metrics.New(metrics.WithNamespace("myapp"))
//	obs := reactive.NewObserver(reactive.WithRecorder(rec))
//	w := reactive.NewWatcher(root, "user.name", fn, reactive.WithWatcherRecorder(rec))
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
package metrics
