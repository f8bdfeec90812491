// Package vtest provides testing helpers for code built on the reactive
// core: a recorder for watcher callbacks, YAML test data and output
// assertions.
//
// # Quick Start
//
//	func TestGreeting(t *testing.T) {
//	    data := vtest.Data(t, `user: {name: Alice}`)
//	    reactive.Observe(data)
//
//	    rec := vtest.NewRecorder()
//	    reactive.NewWatcher(data, "user.name", rec.Func())
//
//	    data.Get("user").(*reactive.Object).Set("name", reactive.String("Bob"))
//	    vtest.ExpectTexts(t, rec, "Bob")
//	}
package vtest
