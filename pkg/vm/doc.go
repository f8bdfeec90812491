// Package vm provides the view model facade that templates bind against.
//
// A VM observes its data object, proxies the data's top-level properties
// and adds computed properties:
//
//	model, err := vm.New(data,
//	    vm.WithComputed("fullName", func(m *vm.VM) reactive.Value {
//	        return reactive.String(reactive.Text(m.Get("first")) + " " + reactive.Text(m.Get("last")))
//	    }),
//	)
//
//	model.Watch("fullName", func(v reactive.Value) { fmt.Println(reactive.Text(v)) })
//	model.Set("first", reactive.String("Ada")) // prints "Ada Lovelace"
//
// Computed properties need no mechanism of their own: reading one runs its
// function, whose reads register the evaluating watcher with the
// underlying data properties.
package vm
