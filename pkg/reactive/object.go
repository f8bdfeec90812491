package reactive

import (
	"strconv"
	"sync"
)

// Source is anything a path can be resolved against.
// Lookup performs a tracked read of one key.
type Source interface {
	Lookup(key string) (Value, bool)
}

// Object is a mutable mapping from property names to values, kept in
// definition order. Arrays are Objects whose keys are "0".."n-1".
//
// Until it is observed, an Object behaves like a plain map: reads register
// nothing and writes notify nobody. Observe turns every property into a
// tracked property backed by its own Dep.
type Object struct {
	keys  []string
	props map[string]*property
	array bool

	// mu protects keys, props and every property's value and dep.
	mu sync.RWMutex
}

// property is one field of an Object. dep is nil until the property is
// instrumented.
type property struct {
	value Value
	dep   *Dep
	obs   *Observer
}

// NewObject creates an empty, unobserved object.
func NewObject() *Object {
	return &Object{props: make(map[string]*property)}
}

// NewArray creates an unobserved array-like object holding items.
func NewArray(items ...Value) *Object {
	o := NewObject()
	o.array = true
	for i, item := range items {
		o.define(strconv.Itoa(i), item)
	}
	return o
}

// With defines key on an object under construction and returns the object.
// On a property that is already tracked it behaves like Set.
func (o *Object) With(key string, v Value) *Object {
	o.mu.Lock()
	if p, ok := o.props[key]; ok && p.dep != nil {
		o.mu.Unlock()
		o.Set(key, v)
		return o
	}
	o.define(key, v)
	o.mu.Unlock()
	return o
}

func (o *Object) Kind() Kind { return KindObject }
func (o *Object) isValue()   {}

// IsArray reports whether o was built as an array.
func (o *Object) IsArray() bool {
	return o.array
}

// Keys returns the property names in definition order.
func (o *Object) Keys() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of properties.
func (o *Object) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.keys)
}

// Has reports whether key is an own property of o.
func (o *Object) Has(key string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.props[key]
	return ok
}

// Tracked reports whether key has been instrumented.
func (o *Object) Tracked(key string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.props[key]
	return ok && p.dep != nil
}

// Dep returns the registry of a tracked property, or nil.
func (o *Object) Dep(key string) *Dep {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if p, ok := o.props[key]; ok {
		return p.dep
	}
	return nil
}

// Get reads key. If a subscriber is being evaluated on the calling
// goroutine and the property is tracked, the subscriber is registered in
// the property's Dep. Missing keys read as Undefined.
func (o *Object) Get(key string) Value {
	v, _ := o.Lookup(key)
	return v
}

// Lookup is Get with a presence flag. It implements Source.
func (o *Object) Lookup(key string) (Value, bool) {
	o.mu.RLock()
	p, ok := o.props[key]
	if !ok {
		o.mu.RUnlock()
		return Undefined, false
	}
	value, dep, obs := p.value, p.dep, p.obs
	o.mu.RUnlock()

	if dep != nil {
		if sub := activeSubscriber(); sub != nil {
			dep.Register(sub)
			obs.registered(sub, dep)
		}
	}
	return value, true
}

// Peek reads key without registering anything.
func (o *Object) Peek(key string) Value {
	return o.peek(key)
}

func (o *Object) peek(key string) Value {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if p, ok := o.props[key]; ok {
		return p.value
	}
	return Undefined
}

// Set writes key. On a tracked property the stored value is re-observed
// and the property's subscribers are notified before Set returns. A key
// that does not exist yet is added as a plain, untracked property.
// A nil v is stored as Null.
func (o *Object) Set(key string, v Value) {
	if v == nil {
		v = Null()
	}

	o.mu.Lock()
	p, ok := o.props[key]
	if !ok {
		o.define(key, v)
		o.mu.Unlock()
		return
	}
	if p.dep == nil {
		p.value = v
		o.mu.Unlock()
		return
	}
	changed := !Same(p.value, v)
	if changed {
		p.value = v
	}
	stored, dep, obs := p.value, p.dep, p.obs
	o.mu.Unlock()

	obs.write(key, stored, dep, changed)
}

// define adds or replaces a plain property. Callers hold mu.
func (o *Object) define(key string, v Value) {
	if v == nil {
		v = Null()
	}
	if p, ok := o.props[key]; ok {
		p.value = v
		return
	}
	if o.props == nil {
		o.props = make(map[string]*property)
	}
	o.keys = append(o.keys, key)
	o.props[key] = &property{value: v}
}

// instrument wires key with a fresh Dep owned by obs. A property that is
// already tracked keeps its Dep and subscribers. It reports whether the
// property was newly wired.
func (o *Object) instrument(key string, obs *Observer) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	p, ok := o.props[key]
	if !ok || p.dep != nil {
		return false
	}
	p.dep = NewDep()
	p.obs = obs
	return true
}
