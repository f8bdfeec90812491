package reactive

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope used when no tracer is configured.
const tracerName = "github.com/vango-dev/mvvm/pkg/reactive"

// Observer instruments data graphs and carries the settings that apply to
// every property it wires: logging, metrics, tracing and the notify budget.
// Properties remember the Observer that wired them.
type Observer struct {
	logger       *slog.Logger
	recorder     Recorder
	tracer       trace.Tracer
	budget       NotifyBudget
	alwaysNotify bool
}

// Option configures an Observer.
type Option func(*Observer)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Observer) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(o *Observer) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithTracer sets the tracer used for notify spans.
// Default: the global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *Observer) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithNotifyBudget bounds nested notifications. See NotifyBudget.
func WithNotifyBudget(b NotifyBudget) Option {
	return func(o *Observer) {
		o.budget = b
	}
}

// WithAlwaysNotify makes writes of an identical value notify subscribers.
// By default such writes re-observe the stored value but notify nobody.
func WithAlwaysNotify() Option {
	return func(o *Observer) {
		o.alwaysNotify = true
	}
}

// NewObserver creates an Observer.
func NewObserver(opts ...Option) *Observer {
	o := &Observer{
		logger:   slog.Default(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	return o
}

var defaultObserver = NewObserver()

// DefaultObserver returns the Observer used by the package-level Observe.
func DefaultObserver() *Observer {
	return defaultObserver
}

// Observe instruments v with the default Observer.
func Observe(v Value) {
	defaultObserver.Observe(v)
}

// Logger returns the observer's logger.
func (ob *Observer) Logger() *slog.Logger {
	return ob.logger
}

// Observe instruments every property reachable from v, children before
// their parents. Primitives and Undefined are ignored. Observing a graph
// again wires only the properties added since; existing Deps and their
// subscribers are kept. Cycles are visited once.
func (ob *Observer) Observe(v Value) {
	ob.observe(v, make(map[*Object]struct{}))
}

func (ob *Observer) observe(v Value, seen map[*Object]struct{}) {
	obj, ok := v.(*Object)
	if !ok {
		return
	}
	if _, dup := seen[obj]; dup {
		return
	}
	seen[obj] = struct{}{}

	for _, key := range obj.Keys() {
		ob.observe(obj.peek(key), seen)
		if obj.instrument(key, ob) {
			ob.recorder.PropertyObserved()
		}
	}
}

// registered is called by a tracked read after sub joined dep.
func (ob *Observer) registered(sub Subscriber, dep *Dep) {
	ob.recorder.SubscriberRegistered()
	if Debug.LogRegistrations {
		ob.logger.Debug("reactive: subscriber registered",
			"subscriber", sub.ID(),
			"dep", dep.ID(),
			"registrations", dep.Len())
	}
}

// write finishes a tracked property write once the new value is stored:
// it re-observes what was stored and notifies unless the value was the
// same and alwaysNotify is off.
func (ob *Observer) write(key string, stored Value, dep *Dep, changed bool) {
	ob.recorder.PropertyWritten(changed)
	ob.Observe(stored)
	if !changed && !ob.alwaysNotify {
		return
	}
	ob.notify(key, dep)
}

// notify fans out to dep's subscribers under the notify budget, inside a
// span when there is anyone to notify.
func (ob *Observer) notify(key string, dep *Dep) {
	ctx, depth := enterNotify()
	defer exitNotify(ctx)

	if !ob.budget.allows(depth) {
		if ob.budget.OnExceeded == BudgetModePanic || DevMode {
			panic(&BudgetError{Key: key, Depth: depth})
		}
		ob.recorder.NotifyDropped()
		ob.logger.Warn("reactive: notification dropped",
			"key", key,
			"depth", depth,
			"max_depth", ob.budget.MaxDepth,
			"error", ErrNotifyDepthExceeded)
		return
	}

	n := dep.Len()
	ob.recorder.NotifyFanout(n)
	if Debug.LogNotifications {
		ob.logger.Debug("reactive: notify", "key", key, "dep", dep.ID(), "subscribers", n, "depth", depth)
	}
	if n == 0 {
		return
	}

	prev := ctx.spanCtx
	parent := prev
	if parent == nil {
		parent = context.Background()
	}
	spanCtx, span := ob.tracer.Start(parent, "reactive.notify",
		trace.WithAttributes(
			attribute.String("reactive.key", key),
			attribute.Int("reactive.subscribers", n),
			attribute.Int("reactive.depth", depth),
		))
	ctx.spanCtx = spanCtx
	defer func() {
		ctx.spanCtx = prev
		span.End()
	}()

	dep.Notify()
}
