package reactive

import (
	"sync"
	"sync/atomic"
)

// Subscriber is anything a Dep can notify when its property is written.
// Watchers implement it; external bindings may supply their own.
type Subscriber interface {
	// Update re-evaluates the subscriber. It runs synchronously inside the
	// write that triggered it.
	Update()

	// ID returns a unique identifier for this subscriber.
	ID() uint64
}

// globalIDCounter is the source of unique IDs for deps and watchers.
var globalIDCounter uint64

// nextID returns the next unique ID. IDs are never reused.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// Dep is the dependency registry of one tracked property: the ordered list
// of subscribers that read it while being evaluated.
type Dep struct {
	id uint64

	// subs keeps registration order and may hold the same subscriber
	// more than once.
	subs []Subscriber

	// mu protects subs.
	mu sync.Mutex
}

// NewDep creates an empty registry.
func NewDep() *Dep {
	return &Dep{id: nextID()}
}

// ID returns the unique identifier for this registry.
func (d *Dep) ID() uint64 {
	return d.id
}

// Register appends s. There is no uniqueness check.
func (d *Dep) Register(s Subscriber) {
	if s == nil {
		return
	}
	d.mu.Lock()
	d.subs = append(d.subs, s)
	d.mu.Unlock()
}

// Notify calls Update on every registered subscriber in registration order
// and returns once all of them have run. Subscribers registered while the
// fan-out is running are not called until the next Notify.
func (d *Dep) Notify() {
	for _, s := range d.snapshot() {
		s.Update()
	}
}

// Len returns the number of registrations, duplicates included.
func (d *Dep) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// Subscribers returns a copy of the registration list.
func (d *Dep) Subscribers() []Subscriber {
	return d.snapshot()
}

// snapshot copies subs so that no lock is held while subscribers run.
func (d *Dep) snapshot() []Subscriber {
	d.mu.Lock()
	subs := make([]Subscriber, len(d.subs))
	copy(subs, d.subs)
	d.mu.Unlock()
	return subs
}
