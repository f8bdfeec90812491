package reactive

import (
	"log/slog"
	"sync"
)

// Watcher binds a dotted path on a root to a callback. It evaluates the
// path once when created, registering itself with every property it reads,
// and re-evaluates and calls onChange each time one of those properties is
// written.
//
// A watcher registers only during its first evaluation. If a later write
// replaces an object along the path, the replacement's properties are not
// watched until some new watcher reads them.
type Watcher struct {
	id       uint64
	root     Source
	path     Path
	onChange func(Value)

	last Value
	mu   sync.RWMutex

	recover  bool
	logger   *slog.Logger
	recorder Recorder
	name     string
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithRecover makes the watcher recover a panic raised by its callback,
// log it and let the rest of the fan-out continue. Without it a panicking
// callback unwinds through the write that triggered it.
func WithRecover() WatcherOption {
	return func(w *Watcher) {
		w.recover = true
	}
}

// WithWatcherLogger sets the logger used for recovered panics and debug
// records. Default: slog.Default().
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithWatcherRecorder sets the metrics recorder for this watcher.
func WithWatcherRecorder(r Recorder) WatcherOption {
	return func(w *Watcher) {
		if r != nil {
			w.recorder = r
		}
	}
}

// WithName labels the watcher in log records.
func WithName(name string) WatcherOption {
	return func(w *Watcher) {
		w.name = name
	}
}

// NewWatcher creates a watcher on the dotted path expr. The initial value
// is available through Value; onChange is not called for it. A nil
// onChange is allowed. An empty expr watches nothing and its value is
// Undefined.
//
// Example:
//
//	w := reactive.NewWatcher(root, "user.name", func(v reactive.Value) {
//	    node.Data = reactive.Text(v)
//	})
func NewWatcher(root Source, expr string, onChange func(Value), opts ...WatcherOption) *Watcher {
	return NewPathWatcher(root, ParsePath(expr), onChange, opts...)
}

// NewPathWatcher is NewWatcher for an already split path.
func NewPathWatcher(root Source, path Path, onChange func(Value), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		id:       nextID(),
		root:     root,
		path:     path,
		onChange: onChange,
		logger:   slog.Default(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name == "" {
		w.name = path.String()
	}

	w.last = w.evaluate()
	w.recorder.WatcherCreated()
	return w
}

// evaluate resolves the path with w active, so that every property read
// registers w. The tracking context is cleared even if a read panics.
func (w *Watcher) evaluate() Value {
	activate(w)
	defer deactivate()
	v, _ := Resolve(w.root, w.path)
	return v
}

// ID returns the unique identifier for this watcher.
// Implements the Subscriber interface.
func (w *Watcher) ID() uint64 {
	return w.id
}

// Path returns the watched path.
func (w *Watcher) Path() Path {
	return w.path
}

// Value returns the value from the most recent evaluation.
func (w *Watcher) Value() Value {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.last
}

// Update re-resolves the path without tracking, stores the result and
// calls onChange with it. Implements the Subscriber interface.
func (w *Watcher) Update() {
	var v Value
	Untracked(func() {
		v, _ = Resolve(w.root, w.path)
	})

	w.mu.Lock()
	w.last = v
	w.mu.Unlock()

	w.recorder.WatcherUpdated()
	if Debug.LogWatcherUpdates {
		w.logger.Debug("reactive: watcher updated", "watcher", w.name, "id", w.id, "value", Text(v))
	}

	if w.onChange == nil {
		return
	}
	if w.recover {
		w.callSafely(v)
		return
	}
	w.onChange(v)
}

func (w *Watcher) callSafely(v Value) {
	defer func() {
		if r := recover(); r != nil {
			w.recorder.CallbackPanicked()
			w.logger.Error("reactive: watcher callback panicked",
				"watcher", w.name,
				"id", w.id,
				"error", &CallbackPanic{Path: w.path, Value: r})
		}
	}()
	w.onChange(v)
}
