// Package compile binds HTML templates to a view model.
//
// The compiler walks an HTML fragment parsed with golang.org/x/net/html
// and creates one reactive watcher per binding it finds:
//
//	<p>Hello {{ user.name }}</p>          text interpolation
//	<input v-model="user.name">           two-way value binding
//
// Watchers rewrite their node in place when the model changes, and
// Render serializes the current tree:
//
//	model, _ := vm.New(data)
//	tpl, err := compile.CompileString(`<p>Hello {{ user.name }}</p>`, model)
//	if err != nil {
//	    return err
//	}
//	model.SetPath("user.name", reactive.String("Bob"))
//	fmt.Println(tpl.String()) // <p>Hello Bob</p>
package compile
