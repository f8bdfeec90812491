// Package errors provides coded, structured errors for mvvm's compiler,
// view model, configuration and CLI.
//
// Each error code maps to a category, a short message and an explanation:
//
//	err := errors.New("E201").
//	    WithLocation("page.html", 12, 5).
//	    WithSuggestion("Close the <div> opened on line 10")
//
//	fmt.Println(err.Format())
//
// # Error Codes
//
//   - E1xx: binding errors (paths, computed properties)
//   - E2xx: template errors
//   - E3xx: data files, configuration and command-line input
package errors
