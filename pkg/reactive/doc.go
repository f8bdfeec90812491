// Package reactive is the data-binding core of mvvm.
//
// It turns a plain data graph into one whose every property read and write
// is observable, and lets watchers subscribe to dotted property paths so
// that they re-run whenever a value along the path is written.
//
// # Core Types
//
// Value is a closed union of Primitive, *Object and the Undefined sentinel:
//
//	data := reactive.NewObject().
//	    With("user", reactive.NewObject().With("name", reactive.String("Alice")))
//
// Observe instruments the graph. Each property gets its own Dep, the
// ordered list of subscribers that read it:
//
//	reactive.Observe(data)
//
// A Watcher evaluates its path once while registered as the active
// subscriber of its goroutine, so each property it reads records it:
//
//	w := reactive.NewWatcher(data, "user.name", func(v reactive.Value) {
//	    fmt.Println("name is now", reactive.Text(v))
//	})
//
// Writing a tracked property stores the value, observes it if it is an
// object, and calls Update on every subscriber before returning:
//
//	user := data.Get("user").(*reactive.Object)
//	user.Set("name", reactive.String("Bob")) // prints "name is now Bob"
//
// # Notification Rules
//
// Notification is synchronous and unbatched. A subscriber registered twice
// in one Dep is updated twice per write. Writing a value identical to the
// stored one re-observes it but notifies nobody, unless the Observer was
// created with WithAlwaysNotify. Callbacks that write tracked properties
// re-enter notification; the depth is unbounded unless a NotifyBudget is
// configured.
//
// # Thread Safety
//
// The tracking context is per-goroutine, so watchers can be evaluated on
// different goroutines without attributing reads to each other. A context
// exists only while its goroutine is evaluating a watcher or notifying
// subscribers, so short-lived goroutines need no cleanup. A single
// data graph should still be mutated from one goroutine at a time:
// notification order across goroutines is not defined.
package reactive
