package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the Prometheus recorder.
type Config struct {
	// Namespace is the metrics namespace (default: "mvvm").
	Namespace string

	// Subsystem is the metrics subsystem (default: "reactive").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// FanoutBuckets are the histogram buckets for notify fan-out size.
	FanoutBuckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus recorder.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithFanoutBuckets sets the fan-out histogram buckets.
func WithFanoutBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.FanoutBuckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace:     "mvvm",
		Subsystem:     "reactive",
		FanoutBuckets: []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
		Registry:      prometheus.DefaultRegisterer,
	}
}

// Recorder implements reactive.Recorder with Prometheus collectors.
//
// Metrics collected:
//   - mvvm_reactive_properties_observed_total: properties wired with a Dep
//   - mvvm_reactive_registrations_total: subscriber registrations
//   - mvvm_reactive_writes_total: tracked writes by outcome (changed, unchanged)
//   - mvvm_reactive_notify_fanout: histogram of subscribers per notification
//   - mvvm_reactive_notifications_dropped_total: notifications dropped by the budget
//   - mvvm_reactive_watchers_total: watchers created
//   - mvvm_reactive_watcher_updates_total: watcher re-evaluations
//   - mvvm_reactive_callback_panics_total: recovered callback panics
type Recorder struct {
	propertiesObserved prometheus.Counter
	registrations      prometheus.Counter
	writes             *prometheus.CounterVec
	fanout             prometheus.Histogram
	dropped            prometheus.Counter
	watchers           prometheus.Counter
	watcherUpdates     prometheus.Counter
	callbackPanics     prometheus.Counter
}

// New registers the collectors and returns a Recorder. Registering twice
// on the same registry panics, as promauto does.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	obs := reactive.NewObserver(reactive.WithRecorder(metrics.New(metrics.WithRegistry(reg))))
func New(opts ...Option) *Recorder {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Recorder{
		propertiesObserved: counter("properties_observed_total", "Total number of properties wired with a dependency registry"),
		registrations:      counter("registrations_total", "Total number of subscriber registrations"),
		writes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "writes_total",
			Help:        "Total number of writes to tracked properties",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),
		fanout: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notify_fanout",
			Help:        "Number of subscribers notified per write",
			ConstLabels: config.ConstLabels,
			Buckets:     config.FanoutBuckets,
		}),
		dropped:        counter("notifications_dropped_total", "Total number of notifications dropped by the notify budget"),
		watchers:       counter("watchers_total", "Total number of watchers created"),
		watcherUpdates: counter("watcher_updates_total", "Total number of watcher re-evaluations"),
		callbackPanics: counter("callback_panics_total", "Total number of recovered watcher callback panics"),
	}
}

func (r *Recorder) PropertyObserved()     { r.propertiesObserved.Inc() }
func (r *Recorder) SubscriberRegistered() { r.registrations.Inc() }
func (r *Recorder) NotifyFanout(n int)    { r.fanout.Observe(float64(n)) }
func (r *Recorder) NotifyDropped()        { r.dropped.Inc() }
func (r *Recorder) WatcherCreated()       { r.watchers.Inc() }
func (r *Recorder) WatcherUpdated()       { r.watcherUpdates.Inc() }
func (r *Recorder) CallbackPanicked()     { r.callbackPanics.Inc() }

// PropertyWritten records a tracked write.
func (r *Recorder) PropertyWritten(changed bool) {
	outcome := "unchanged"
	if changed {
		outcome = "changed"
	}
	r.writes.WithLabelValues(outcome).Inc()
}
