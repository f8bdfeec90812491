package vm

import (
	"github.com/vango-dev/mvvm/internal/errors"
	"github.com/vango-dev/mvvm/pkg/reactive"
)

// ComputedFunc derives a value from the view model. It runs on every read;
// the properties it reads become dependencies of whichever watcher is
// being evaluated.
type ComputedFunc func(vm *VM) reactive.Value

// VM is the facade a template binds against. It proxies its data's
// top-level properties and adds read-only computed properties.
type VM struct {
	data     *reactive.Object
	keys     []string
	proxied  map[string]bool
	computed map[string]ComputedFunc
	order    []string
	observer *reactive.Observer
}

// Option configures a VM.
type Option func(*VM)

// WithComputed adds a computed property.
func WithComputed(name string, fn ComputedFunc) Option {
	return func(vm *VM) {
		if _, dup := vm.computed[name]; !dup {
			vm.order = append(vm.order, name)
		}
		vm.computed[name] = fn
	}
}

// WithObserver sets the observer that instruments the data.
// Default: reactive.DefaultObserver().
func WithObserver(obs *reactive.Observer) Option {
	return func(vm *VM) {
		if obs != nil {
			vm.observer = obs
		}
	}
}

// New observes data and returns a view model over it. The set of proxied
// keys is fixed to data's top-level keys at this point.
func New(data *reactive.Object, opts ...Option) (*VM, error) {
	if data == nil {
		data = reactive.NewObject()
	}
	vm := &VM{
		data:     data,
		computed: make(map[string]ComputedFunc),
		proxied:  make(map[string]bool),
		observer: reactive.DefaultObserver(),
	}
	for _, opt := range opts {
		opt(vm)
	}

	vm.observer.Observe(data)

	vm.keys = data.Keys()
	for _, k := range vm.keys {
		vm.proxied[k] = true
	}
	for _, name := range vm.order {
		if vm.proxied[name] {
			return nil, errors.New("E104").WithDetail("computed property " + name + " has the same name as a data property")
		}
	}
	return vm, nil
}

// Data returns the underlying data object.
func (vm *VM) Data() *reactive.Object {
	return vm.data
}

// Observer returns the observer that instrumented the data.
func (vm *VM) Observer() *reactive.Observer {
	return vm.observer
}

// Keys returns the proxied data keys followed by the computed names.
func (vm *VM) Keys() []string {
	keys := make([]string, 0, len(vm.keys)+len(vm.order))
	keys = append(keys, vm.keys...)
	return append(keys, vm.order...)
}

// Lookup implements reactive.Source. Data keys are read through their
// tracked accessors; computed keys run their function.
func (vm *VM) Lookup(key string) (reactive.Value, bool) {
	if vm.proxied[key] {
		return vm.data.Lookup(key)
	}
	if fn, ok := vm.computed[key]; ok {
		return fn(vm), true
	}
	return reactive.Undefined, false
}

// Get reads a top-level or computed property. Unknown keys read as Undefined.
func (vm *VM) Get(key string) reactive.Value {
	v, _ := vm.Lookup(key)
	return v
}

// Set writes a top-level data property through its accessor.
func (vm *VM) Set(key string, v reactive.Value) error {
	return vm.Assign(key, v)
}

// Assign implements reactive.Setter.
func (vm *VM) Assign(key string, v reactive.Value) error {
	if vm.proxied[key] {
		vm.data.Set(key, v)
		return nil
	}
	if _, ok := vm.computed[key]; ok {
		return errors.New("E102").WithDetail("cannot assign computed property " + key)
	}
	return errors.New("E103").WithDetail("the view model has no property " + key)
}

// Watch creates a watcher rooted at the view model.
func (vm *VM) Watch(expr string, onChange func(reactive.Value), opts ...reactive.WatcherOption) *reactive.Watcher {
	return reactive.NewWatcher(vm, expr, onChange, opts...)
}

// SetPath writes v at a dotted path below the view model.
func (vm *VM) SetPath(expr string, v reactive.Value) error {
	path := reactive.ParsePath(expr)
	if err := reactive.Assign(vm, path, v); err != nil {
		return errors.FromError(err, "E101")
	}
	return nil
}
